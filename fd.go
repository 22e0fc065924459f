package wasicore

import (
	"io"
	"io/fs"
	"math"
	"time"

	"github.com/wasicore/wasicore/sandboxfs"
)

// Advice is the fd_advise hint, forwarded to the host's posix_fadvise where
// available.
type Advice uint8

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceRandom
	AdviceWillneed
	AdviceDontneed
	AdviceNoreuse
)

// FdAdvise implements fd_advise: forwards the hint to the
// host via posix_fadvise where the platform exposes it, and is a no-op
// everywhere else. Requires RightFdAdvise.
func (s *Sandbox) FdAdvise(fd Fd, offset Filesize, length Filesize, advice Advice) Errno {
	d, errno := s.table.get(fd, RightFdAdvise, 0)
	if errno != ESUCCESS {
		return errno
	}
	fder, ok := d.file.(sandboxfs.Fder)
	if !ok {
		return ESUCCESS
	}
	return makeErrno(fadvise(fder.Fd(), int64(offset), int64(length), advice))
}

// FdAllocate implements fd_allocate: ensures the file is at least
// offset+len bytes, via the host's posix_fallocate where available, falling
// back to Stat+Truncate when the file is already large enough or the host
// call is unsupported. Requires RightFdAllocate.
func (s *Sandbox) FdAllocate(fd Fd, offset, length Filesize) Errno {
	d, errno := s.table.get(fd, RightFdAllocate, 0)
	if errno != ESUCCESS {
		return errno
	}
	need := int64(offset + length)

	if fder, ok := d.file.(sandboxfs.Fder); ok {
		if err := fallocate(fder.Fd(), 0, need); err == nil {
			return ESUCCESS
		} else if err != errNotSupported {
			return makeErrno(err)
		}
	}

	info, err := d.file.Stat()
	if err != nil {
		return makeErrno(err)
	}
	if info.Size() >= need {
		return ESUCCESS
	}
	return makeErrno(d.file.Truncate(need))
}

// FdClose implements fd_close: closes the host handle and frees the slot.
// No right is required.
func (s *Sandbox) FdClose(fd Fd) Errno {
	d, errno := s.table.lookup(fd)
	if errno != ESUCCESS {
		return errno
	}
	if err := d.file.Close(); err != nil {
		return makeErrno(err)
	}
	_, errno = s.table.remove(fd)
	return errno
}

// FdDatasync implements fd_datasync. Requires RightFdDatasync.
func (s *Sandbox) FdDatasync(fd Fd) Errno {
	d, errno := s.table.get(fd, RightFdDatasync, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(d.file.Sync())
}

// FdSync implements fd_sync. Requires RightFdSync.
func (s *Sandbox) FdSync(fd Fd) Errno {
	d, errno := s.table.get(fd, RightFdSync, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(d.file.Sync())
}

// FdFdstatGet implements fd_fdstat_get. No right is required.
func (s *Sandbox) FdFdstatGet(fd Fd) (Fdstat, Errno) {
	d, errno := s.table.lookup(fd)
	if errno != ESUCCESS {
		return Fdstat{}, errno
	}
	flags, err := fdstatFlags(d.file)
	if err != nil {
		return Fdstat{}, makeErrno(err)
	}
	return Fdstat{
		Filetype:         d.typ,
		Flags:            flags,
		RightsBase:       d.rightsBase,
		RightsInheriting: d.rightsInheriting,
	}, ESUCCESS
}

// FdFdstatSetFlags implements fd_fdstat_set_flags: translates WASI flag
// bits to the host's F_SETFL flags. DSYNC/RSYNC degrade to SYNC on
// platforms that lack them. Requires RightFdFdstatSetFlags.
func (s *Sandbox) FdFdstatSetFlags(fd Fd, flags Fdflags) Errno {
	d, errno := s.table.get(fd, RightFdFdstatSetFlags, 0)
	if errno != ESUCCESS {
		return errno
	}
	fder, ok := d.file.(sandboxfs.Fder)
	if !ok {
		d.flags = flags
		return ESUCCESS
	}
	if err := setFileStatusFlags(fder.Fd(), flags); err != nil {
		return makeErrno(err)
	}
	d.flags = flags
	return ESUCCESS
}

// FdFdstatSetRights implements fd_fdstat_set_rights: narrows rights only,
// per the table's monotonicity invariant.
func (s *Sandbox) FdFdstatSetRights(fd Fd, base, inheriting Rights) Errno {
	return s.table.setRights(fd, base, inheriting)
}

// FdFilestatGet implements fd_filestat_get. Requires RightFdFilestatGet.
func (s *Sandbox) FdFilestatGet(fd Fd) (Filestat, Errno) {
	d, errno := s.table.get(fd, RightFdFilestatGet, 0)
	if errno != ESUCCESS {
		return Filestat{}, errno
	}
	info, err := d.file.Stat()
	if err != nil {
		return Filestat{}, makeErrno(err)
	}
	return makeFilestat(info), ESUCCESS
}

// FdFilestatSetSize implements fd_filestat_set_size. Requires
// RightFdFilestatSetSize.
func (s *Sandbox) FdFilestatSetSize(fd Fd, size Filesize) Errno {
	d, errno := s.table.get(fd, RightFdFilestatSetSize, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(d.file.Truncate(int64(size)))
}

// FdFilestatSetTimes implements fd_filestat_set_times. Timestamp
// truncation by the host filesystem is reported as success rather than an
// error, since the guest asked for "as close as this filesystem allows".
// Requires RightFdFilestatSetTimes.
func (s *Sandbox) FdFilestatSetTimes(fd Fd, atim, mtim Timestamp, flags Fstflags) Errno {
	d, errno := s.table.get(fd, RightFdFilestatSetTimes, 0)
	if errno != ESUCCESS {
		return errno
	}
	a, m, err := resolveTimes(d.file, atim, mtim, flags)
	if err != nil {
		return makeErrno(err)
	}
	return makeErrno(d.file.Chtimes(a, m))
}

// resolveTimes applies the FstflagAtimNow/FstflagMtimNow "use current time"
// substitution shared by fd_filestat_set_times and path_filestat_set_times.
func resolveTimes(f sandboxfs.File, atim, mtim Timestamp, flags Fstflags) (a, m time.Time, err error) {
	now := time.Now()
	a, m = atim.Time(), mtim.Time()
	if flags&FstflagAtimNow != 0 {
		a = now
	} else if flags&FstflagAtim == 0 {
		if info, statErr := f.Stat(); statErr == nil {
			a = info.ModTime()
		}
	}
	if flags&FstflagMtimNow != 0 {
		m = now
	} else if flags&FstflagMtim == 0 {
		if info, statErr := f.Stat(); statErr == nil {
			m = info.ModTime()
		}
	}
	return a, m, nil
}

// FdPread implements fd_pread: vectored positional read. Requires
// RightFdRead|RightFdSeek.
func (s *Sandbox) FdPread(fd Fd, iovs [][]byte, offset Filesize) (Filesize, Errno) {
	d, errno := s.table.get(fd, RightFdRead|RightFdSeek, 0)
	if errno != ESUCCESS {
		return 0, errno
	}
	var n Filesize
	off := int64(offset)
	for _, buf := range iovs {
		read, err := d.file.ReadAt(buf, off)
		n += Filesize(read)
		off += int64(read)
		if err != nil {
			if err == io.EOF {
				break
			}
			return n, makeErrno(err)
		}
	}
	return n, ESUCCESS
}

// FdPwrite implements fd_pwrite: vectored positional write. Requires
// RightFdWrite|RightFdSeek.
func (s *Sandbox) FdPwrite(fd Fd, iovs [][]byte, offset Filesize) (Filesize, Errno) {
	d, errno := s.table.get(fd, RightFdWrite|RightFdSeek, 0)
	if errno != ESUCCESS {
		return 0, errno
	}
	var n Filesize
	off := int64(offset)
	for _, buf := range iovs {
		written, err := d.file.WriteAt(buf, off)
		n += Filesize(written)
		off += int64(written)
		if err != nil {
			return n, makeErrno(err)
		}
	}
	return n, ESUCCESS
}

// FdRead implements fd_read: vectored stream read. Requires RightFdRead.
func (s *Sandbox) FdRead(fd Fd, iovs [][]byte) (Filesize, Errno) {
	d, errno := s.table.get(fd, RightFdRead, 0)
	if errno != ESUCCESS {
		return 0, errno
	}
	var n Filesize
	for _, buf := range iovs {
		read, err := d.file.Read(buf)
		n += Filesize(read)
		if err != nil {
			if err == io.EOF {
				break
			}
			return n, makeErrno(err)
		}
	}
	return n, ESUCCESS
}

// FdWrite implements fd_write: vectored stream write. Requires RightFdWrite.
func (s *Sandbox) FdWrite(fd Fd, iovs [][]byte) (Filesize, Errno) {
	d, errno := s.table.get(fd, RightFdWrite, 0)
	if errno != ESUCCESS {
		return 0, errno
	}
	var n Filesize
	for _, buf := range iovs {
		written, err := d.file.Write(buf)
		n += Filesize(written)
		if err != nil {
			return n, makeErrno(err)
		}
	}
	return n, ESUCCESS
}

// FdSeek implements fd_seek. Zero-offset/Cur seeks only need RightFdTell;
// everything else needs RightFdSeek.
func (s *Sandbox) FdSeek(fd Fd, offset Filedelta, whence Whence) (Filesize, Errno) {
	need := RightFdSeek
	if offset == 0 && whence == WhenceCur {
		need = RightFdTell
	}
	d, errno := s.table.get(fd, need, 0)
	if errno != ESUCCESS {
		return 0, errno
	}
	var w int
	switch whence {
	case WhenceSet:
		w = io.SeekStart
	case WhenceCur:
		w = io.SeekCurrent
	case WhenceEnd:
		w = io.SeekEnd
	default:
		return 0, EINVAL
	}
	pos, err := d.file.Seek(int64(offset), w)
	return Filesize(pos), makeErrno(err)
}

// FdTell implements fd_tell as fd_seek(fd, 0, Cur).
func (s *Sandbox) FdTell(fd Fd) (Filesize, Errno) {
	return s.FdSeek(fd, 0, WhenceCur)
}

// FdPrestatGet implements fd_prestat_get: succeeds only for preopens.
func (s *Sandbox) FdPrestatGet(fd Fd) (Prestat, Errno) {
	d, errno := s.table.lookup(fd)
	if errno != ESUCCESS {
		return Prestat{}, errno
	}
	if !d.preopen {
		return Prestat{}, EINVAL
	}
	return Prestat{Type: FiletypeDirectory, NameLen: uint32(len(d.mappedPath))}, ESUCCESS
}

// FdPrestatDirName implements fd_prestat_dir_name: copies the preopen's
// mapped path into buf, which the caller must size at least NameLen bytes
// (no trailing NUL is written; the guest already knows the length from
// FdPrestatGet).
func (s *Sandbox) FdPrestatDirName(fd Fd, bufLen uint32) ([]byte, Errno) {
	d, errno := s.table.lookup(fd)
	if errno != ESUCCESS {
		return nil, errno
	}
	if !d.preopen {
		return nil, EINVAL
	}
	if uint32(len(d.mappedPath)) > bufLen {
		return nil, ENOBUFS
	}
	return []byte(d.mappedPath), ESUCCESS
}

// FdRenumber implements fd_renumber: closes to's host handle, moves
// from's descriptor into to's slot, frees from. No right is required.
func (s *Sandbox) FdRenumber(from, to Fd) Errno {
	return s.table.renumber(from, to)
}

const readdirChunk = 64

// FdReaddir implements fd_readdir: serializes directory
// entries as fixed 24-byte headers plus name bytes into buf starting from
// cookie, truncating the final record silently when it doesn't fit.
// Requires RightFdReaddir.
func (s *Sandbox) FdReaddir(fd Fd, buf []byte, cookie Dircookie) (Filesize, Errno) {
	d, errno := s.table.get(fd, RightFdReaddir, 0)
	if errno != ESUCCESS {
		return 0, errno
	}
	if cookie > math.MaxInt64 {
		return 0, EINVAL
	}
	if cookie < d.dircookie {
		// A cookie behind our cursor means the guest wants to rescan from
		// an earlier point (including DircookieStart to restart the whole
		// listing); rewind the underlying stream and reset the cursor so
		// the forward walk below can seek back to cookie.
		if _, err := d.file.Seek(0, io.SeekStart); err != nil {
			return 0, makeErrno(err)
		}
		d.dircookie = 0
		d.direntries = nil
	}

	for d.dircookie < cookie {
		if len(d.direntries) == 0 {
			entries, err := d.file.ReadDir(readdirChunk)
			d.direntries = entries
			if len(entries) == 0 {
				if err != nil && err != io.EOF {
					return 0, makeErrno(err)
				}
				return 0, ESUCCESS
			}
		}
		skip := cookie - d.dircookie
		if skip > Dircookie(len(d.direntries)) {
			skip = Dircookie(len(d.direntries))
		}
		d.dircookie += skip
		d.direntries = d.direntries[skip:]
	}

	var used Filesize
	for used < Filesize(len(buf)) {
		if len(d.direntries) == 0 {
			entries, err := d.file.ReadDir(readdirChunk)
			d.direntries = entries
			if len(entries) == 0 {
				if err != nil && err != io.EOF {
					return used, makeErrno(err)
				}
				break
			}
		}

		entry := d.direntries[0]
		name := entry.Name()
		dirent := Dirent{
			Next:    d.dircookie + 1,
			Ino:     direntInode(entry),
			Namelen: uint32(len(name)),
			Type:    filetypeFromMode(entry.Type()),
		}

		remaining := Filesize(len(buf)) - used
		header := dirent.Marshal()
		used += Filesize(copy(buf[used:], header[:]))
		used += Filesize(copy(buf[used:], name))

		if Filesize(dirent.Size()) <= remaining {
			d.dircookie++
			d.direntries = d.direntries[1:]
		}
	}
	return used, ESUCCESS
}

// direntInode returns 0 when the host fs.DirEntry does not portably expose
// an inode number.
func direntInode(entry fs.DirEntry) Inode { return 0 }
