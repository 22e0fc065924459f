package wasicore

import (
	"io/fs"
	"math/bits"

	"github.com/wasicore/wasicore/sandboxfs"
)

// descriptor is the entry the FD table stores for each live Fd: the
// capability-narrowed view of a host file/directory a guest may operate on
// through that number.
type descriptor struct {
	file sandboxfs.File
	root *sandboxfs.Root // non-nil for directories, used to resolve further path_* calls

	typ              Filetype
	rightsBase       Rights
	rightsInheriting Rights
	flags            Fdflags

	preopen    bool
	mappedPath string
	realPath   string

	// Readdir pagination state (see Sandbox.FdReaddir): the directory is read
	// incrementally and cached here so a cookie is simply an index into
	// entries already fetched, rather than requiring a host telldir/seekdir
	// primitive Go does not expose portably.
	dircookie  Dircookie
	direntries []fs.DirEntry
}

// Table is the fixed-capacity file-descriptor table: a bitset of occupied
// slots alongside a parallel descriptor slice, capped at a configured
// capacity instead of growing, since the sandbox's FD table size is fixed
// at init.
type Table struct {
	capacity int
	masks    []uint64
	slots    []*descriptor
}

// newTable allocates a table with room for exactly capacity descriptors.
func newTable(capacity int) *Table {
	words := (capacity + 63) / 64
	return &Table{
		capacity: capacity,
		masks:    make([]uint64, words),
		slots:    make([]*descriptor, words*64),
	}
}

func (t *Table) used(fd Fd) bool {
	i := int(fd)
	if i < 0 || i >= t.capacity {
		return false
	}
	return t.masks[i/64]&(1<<(uint(i)%64)) != 0
}

func (t *Table) mark(fd Fd, used bool) {
	i := int(fd)
	word, bit := i/64, uint(i)%64
	if used {
		t.masks[word] |= 1 << bit
	} else {
		t.masks[word] &^= 1 << bit
	}
}

// insert installs d at the lowest free slot in the whole table, per spec
// section 4.D's insert_fd contract (path_open's new descriptors are not
// confined to any particular range).
func (t *Table) insert(d *descriptor) (Fd, Errno) {
	return t.insertAt(0, d)
}

// insertAt installs d at the lowest free slot at or after start, or fails
// EMFILE if the table is full.
func (t *Table) insertAt(start int, d *descriptor) (Fd, Errno) {
	for i := start; i < t.capacity; i++ {
		if !t.used(Fd(i)) {
			t.slots[i] = d
			t.mark(Fd(i), true)
			return Fd(i), ESUCCESS
		}
	}
	return 0, EMFILE
}

// get looks up fd, requiring it to hold every bit in needBase/needInheriting.
func (t *Table) get(fd Fd, needBase, needInheriting Rights) (*descriptor, Errno) {
	if !t.used(fd) {
		return nil, EBADF
	}
	d := t.slots[fd]
	if !d.rightsBase.Has(needBase) || !d.rightsInheriting.Has(needInheriting) {
		return nil, ENOTCAPABLE
	}
	return d, ESUCCESS
}

// lookup returns the descriptor for fd without any rights check, for
// operations (fd_close, fd_renumber) that require none.
func (t *Table) lookup(fd Fd) (*descriptor, Errno) {
	if !t.used(fd) {
		return nil, EBADF
	}
	return t.slots[fd], ESUCCESS
}

func (t *Table) remove(fd Fd) (*descriptor, Errno) {
	if !t.used(fd) {
		return nil, EBADF
	}
	d := t.slots[fd]
	t.slots[fd] = nil
	t.mark(fd, false)
	return d, ESUCCESS
}

// setRights narrows fd's rights. Attempting to set any bit not already
// present in the current mask fails ENOTCAPABLE and leaves the descriptor
// unchanged, per uvwasi_fd_fdstat_set_rights.
func (t *Table) setRights(fd Fd, base, inheriting Rights) Errno {
	d, errno := t.lookup(fd)
	if errno != ESUCCESS {
		return errno
	}
	if (base|d.rightsBase) > d.rightsBase || (inheriting|d.rightsInheriting) > d.rightsInheriting {
		return ENOTCAPABLE
	}
	d.rightsBase = base
	d.rightsInheriting = inheriting
	return ESUCCESS
}

// renumber performs the atomic close-destination, move-source, free-source
// compound transition: closing to's host handle first, then copying from's
// descriptor into to's slot with the updated id, then freeing from.
func (t *Table) renumber(from, to Fd) Errno {
	if int(to) >= t.capacity {
		return EBADF
	}
	fromDesc, errno := t.lookup(from)
	if errno != ESUCCESS {
		return errno
	}
	if from == to {
		return ESUCCESS
	}
	if toDesc, errno := t.lookup(to); errno == ESUCCESS {
		toDesc.file.Close()
	} else if errno != EBADF {
		return errno
	}

	t.slots[to] = fromDesc
	t.mark(to, true)
	t.slots[from] = nil
	t.mark(from, false)
	return ESUCCESS
}

// numUsed reports how many slots are currently occupied.
func (t *Table) numUsed() (n int) {
	for _, m := range t.masks {
		n += bits.OnesCount64(m)
	}
	return n
}

// scan calls f for every occupied slot; f may return false to stop early.
func (t *Table) scan(f func(Fd, *descriptor) bool) {
	for i := 0; i < t.capacity; i++ {
		if t.used(Fd(i)) {
			if !f(Fd(i), t.slots[i]) {
				return
			}
		}
	}
}
