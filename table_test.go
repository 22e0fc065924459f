package wasicore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriptor(base, inheriting Rights) *descriptor {
	return &descriptor{rightsBase: base, rightsInheriting: inheriting, typ: FiletypeRegularFile}
}

func TestTableInsertLookupRemove(t *testing.T) {
	tbl := newTable(8)
	d := newDescriptor(RightFdRead, 0)
	fd, errno := tbl.insertAt(3, d)
	require.Equal(t, ESUCCESS, errno)
	assert.Equal(t, Fd(3), fd)

	got, errno := tbl.get(fd, RightFdRead, 0)
	require.Equal(t, ESUCCESS, errno)
	assert.Same(t, d, got)

	_, errno = tbl.get(fd, RightFdWrite, 0)
	assert.Equal(t, ENOTCAPABLE, errno)

	_, errno = tbl.remove(fd)
	require.Equal(t, ESUCCESS, errno)
	_, errno = tbl.lookup(fd)
	assert.Equal(t, EBADF, errno)
}

func TestTableFull(t *testing.T) {
	tbl := newTable(1)
	_, errno := tbl.insertAt(0, newDescriptor(0, 0))
	require.Equal(t, ESUCCESS, errno)
	_, errno = tbl.insertAt(0, newDescriptor(0, 0))
	assert.Equal(t, EMFILE, errno)
}

// S3: rights widening must fail and leave the descriptor unchanged.
func TestSetRightsCannotWiden(t *testing.T) {
	tbl := newTable(8)
	d := newDescriptor(RightFdRead, 0)
	fd, _ := tbl.insertAt(0, d)

	errno := tbl.setRights(fd, RightFdRead|RightFdWrite, 0)
	assert.Equal(t, ENOTCAPABLE, errno)
	assert.Equal(t, RightFdRead, d.rightsBase)
}

func TestSetRightsCanNarrow(t *testing.T) {
	tbl := newTable(8)
	d := newDescriptor(RightFdRead|RightFdWrite, 0)
	fd, _ := tbl.insertAt(0, d)

	errno := tbl.setRights(fd, RightFdRead, 0)
	assert.Equal(t, ESUCCESS, errno)
	assert.Equal(t, RightFdRead, d.rightsBase)
}

// S6: renumber closes the destination exactly once and frees the source.
func TestRenumberClosesDestination(t *testing.T) {
	tbl := newTable(8)
	a := newDescriptor(RightFdWrite, 0)
	a.file = &fakeFile{}
	b := newDescriptor(RightFdWrite, 0)
	bFile := &fakeFile{}
	b.file = bFile

	fdA, _ := tbl.insertAt(4, a)
	fdB, _ := tbl.insertAt(5, b)

	errno := tbl.renumber(fdA, fdB)
	require.Equal(t, ESUCCESS, errno)

	assert.Equal(t, 1, bFile.closes)
	_, errno = tbl.lookup(fdA)
	assert.Equal(t, EBADF, errno)
	got, errno := tbl.lookup(fdB)
	require.Equal(t, ESUCCESS, errno)
	assert.Same(t, a, got)
}
