package wasicore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasicore/wasicore/guestmem"
)

func newTestSandbox(t *testing.T, extraFds int) (*Sandbox, Fd) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	sb, err := New(Config{
		FdTableSize: firstPreopenFd + 1 + extraFds,
		Args:        []string{"prog", "arg1"},
		Environ:     []string{"FOO=bar"},
		Preopens:    []Preopen{{MappedPath: "/sandbox", RealPath: dir}},
	})
	require.NoError(t, err)
	t.Cleanup(func() { sb.Close() })
	return sb, Fd(firstPreopenFd)
}

func TestSandboxPreopenInstalled(t *testing.T) {
	sb, preopenFd := newTestSandbox(t, 4)
	got := sb.ListPreopens()
	require.Len(t, got, 1)
	assert.Equal(t, preopenFd, got[0].Fd)
	assert.Equal(t, "/sandbox", got[0].MappedPath)
}

// Write-then-read round trip through an opened file.
func TestPathOpenWriteReadRoundTrip(t *testing.T) {
	sb, preopenFd := newTestSandbox(t, 4)

	fd, errno := sb.PathOpen(preopenFd, 0, "new.txt", OflagCreat, RightFdRead|RightFdWrite|RightFdSeek, 0, 0)
	require.Equal(t, ESUCCESS, errno)

	n, errno := sb.FdWrite(fd, [][]byte{[]byte("payload")})
	require.Equal(t, ESUCCESS, errno)
	assert.Equal(t, Filesize(7), n)

	_, errno = sb.FdSeek(fd, 0, WhenceSet)
	require.Equal(t, ESUCCESS, errno)

	buf := make([]byte, 7)
	n, errno = sb.FdRead(fd, [][]byte{buf})
	require.Equal(t, ESUCCESS, errno)
	assert.Equal(t, Filesize(7), n)
	assert.Equal(t, "payload", string(buf))

	assert.Equal(t, ESUCCESS, sb.FdClose(fd))
}

// S1/escape: path_open must not escape the sandbox root via "..".
func TestPathOpenEscapeRejected(t *testing.T) {
	sb, preopenFd := newTestSandbox(t, 4)
	_, errno := sb.PathOpen(preopenFd, 0, "../outside.txt", OflagCreat, RightFdRead|RightFdWrite, 0, 0)
	assert.Equal(t, ENOTCAPABLE, errno)
}

// Rights must narrow monotonically through path_open: a child file can
// never receive a right its parent directory descriptor doesn't pass down
// through rightsInheriting.
func TestPathOpenRightsNarrowFromParent(t *testing.T) {
	sb, preopenFd := newTestSandbox(t, 4)
	before := sb.NumFds()
	_, errno := sb.PathOpen(preopenFd, 0, "hello.txt", 0, RightFdRead|RightSockShutdown, 0, 0)
	require.Equal(t, ENOTCAPABLE, errno, "a right absent from the preopen's rightsInheriting must never reach the opened file")
	assert.Equal(t, before, sb.NumFds())

	fd, errno := sb.PathOpen(preopenFd, 0, "hello.txt", 0, RightFdRead, 0, 0)
	require.Equal(t, ESUCCESS, errno)

	stat, errno := sb.FdFdstatGet(fd)
	require.Equal(t, ESUCCESS, errno)
	assert.True(t, stat.RightsBase.Has(RightFdRead))
	assert.False(t, stat.RightsBase.Has(RightSockShutdown))
}

func TestFdReaddirListsEntries(t *testing.T) {
	sb, preopenFd := newTestSandbox(t, 4)
	buf := make([]byte, 4096)
	used, errno := sb.FdReaddir(preopenFd, buf, 0)
	require.Equal(t, ESUCCESS, errno)
	assert.Greater(t, int(used), 0)
}

func TestFdRenumberAndClose(t *testing.T) {
	sb, preopenFd := newTestSandbox(t, 4)
	fd, errno := sb.PathOpen(preopenFd, 0, "hello.txt", 0, RightFdRead, 0, 0)
	require.Equal(t, ESUCCESS, errno)

	target := fd + 2
	errno = sb.FdRenumber(fd, target)
	require.Equal(t, ESUCCESS, errno)

	_, errno = sb.FdFdstatGet(fd)
	assert.Equal(t, EBADF, errno)
	_, errno = sb.FdFdstatGet(target)
	assert.Equal(t, ESUCCESS, errno)
}

func TestArgsAndEnvironRoundTrip(t *testing.T) {
	sb, _ := newTestSandbox(t, 4)
	argc, bufSize := sb.ArgsSizesGet()
	assert.Equal(t, uint32(2), argc)
	assert.Equal(t, uint32(len("prog\x00")+len("arg1\x00")), bufSize)

	mem := make(guestmem.Slice, 256)
	require.Equal(t, ESUCCESS, sb.ArgsGet(mem, 0, 64))
	argv0, _ := mem.ReadUint32Le(0)
	argv1, _ := mem.ReadUint32Le(4)
	assert.Equal(t, "prog\x00", string(mem[argv0:argv0+5]))
	assert.Equal(t, "arg1\x00", string(mem[argv1:argv1+5]))

	envc, envBufSize := sb.EnvironSizesGet()
	assert.Equal(t, uint32(1), envc)
	assert.Equal(t, uint32(len("FOO=bar\x00")), envBufSize)

	require.Equal(t, ESUCCESS, sb.EnvironGet(mem, 128, 192))
	env0, _ := mem.ReadUint32Le(128)
	assert.Equal(t, "FOO=bar\x00", string(mem[env0:env0+8]))
}

func TestRandomGetFillsBuffer(t *testing.T) {
	sb, _ := newTestSandbox(t, 4)
	buf := make([]byte, 32)
	require.Equal(t, ESUCCESS, sb.RandomGet(buf))
	nonZero := false
	for _, b := range buf {
		if b != 0 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "random_get should not return an all-zero buffer")
}

func TestSchedYieldSucceeds(t *testing.T) {
	sb, _ := newTestSandbox(t, 4)
	assert.Equal(t, ESUCCESS, sb.SchedYield())
}

func TestPollOneoffUnsupported(t *testing.T) {
	sb, _ := newTestSandbox(t, 4)
	_, errno := sb.PollOneoff(nil, 0)
	assert.Equal(t, ENOTSUP, errno)
}

