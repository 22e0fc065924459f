package abi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

func newTestSandbox(t *testing.T) *wasicore.Sandbox {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0o644))
	sb, err := wasicore.New(wasicore.Config{
		FdTableSize: 16,
		Preopens:    []wasicore.Preopen{{MappedPath: "/s", RealPath: dir}},
	})
	require.NoError(t, err)
	t.Cleanup(func() { sb.Close() })
	return sb
}

// fd_write/fd_read dispatched purely through the Table, exercising the
// guest-memory iovec decoding path.
func TestDispatchFdWriteAndRead(t *testing.T) {
	sb := newTestSandbox(t)
	mem := make(guestmem.Slice, 4096)

	pathBuf := []byte("new.txt")
	copy(mem[100:], pathBuf)

	openedFdPtr := uint32(200)
	errno := Table["path_open"](sb, mem, []uint64{
		3, 0, 100, uint64(len(pathBuf)),
		uint64(wasicore.OflagCreat),
		uint64(wasicore.RightFdRead | wasicore.RightFdWrite | wasicore.RightFdSeek),
		0, 0,
		uint64(openedFdPtr),
	})
	require.Equal(t, wasicore.ESUCCESS, errno)
	openedFd, ok := mem.ReadUint32Le(openedFdPtr)
	require.True(t, ok)

	payload := []byte("abc")
	copy(mem[300:], payload)
	mem.WriteUint32Le(400, 300)
	mem.WriteUint32Le(404, uint32(len(payload)))
	nwrittenPtr := uint32(500)

	errno = Table["fd_write"](sb, mem, []uint64{uint64(openedFd), 400, 1, uint64(nwrittenPtr)})
	require.Equal(t, wasicore.ESUCCESS, errno)
	n, _ := mem.ReadUint32Le(nwrittenPtr)
	assert.Equal(t, uint32(3), n)

	errno = Table["fd_seek"](sb, mem, []uint64{uint64(openedFd), 0, uint64(wasicore.WhenceSet), 600})
	require.Equal(t, wasicore.ESUCCESS, errno)

	mem.WriteUint32Le(400, 700)
	mem.WriteUint32Le(404, uint32(len(payload)))
	nreadPtr := uint32(508)
	errno = Table["fd_read"](sb, mem, []uint64{uint64(openedFd), 400, 1, uint64(nreadPtr)})
	require.Equal(t, wasicore.ESUCCESS, errno)
	n, _ = mem.ReadUint32Le(nreadPtr)
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, "abc", string(mem[700:703]))

	errno = Table["fd_close"](sb, mem, []uint64{uint64(openedFd)})
	require.Equal(t, wasicore.ESUCCESS, errno)
}

func TestDispatchArgsSizesGet(t *testing.T) {
	sb, err := wasicore.New(wasicore.Config{
		FdTableSize: 8,
		Args:        []string{"a", "bb"},
	})
	require.NoError(t, err)
	defer sb.Close()

	mem := make(guestmem.Slice, 64)
	errno := Table["args_sizes_get"](sb, mem, []uint64{0, 4})
	require.Equal(t, wasicore.ESUCCESS, errno)

	argc, _ := mem.ReadUint32Le(0)
	assert.Equal(t, uint32(2), argc)
}

func TestDispatchRandomGet(t *testing.T) {
	sb := newTestSandbox(t)
	mem := make(guestmem.Slice, 64)
	errno := Table["random_get"](sb, mem, []uint64{0, 16})
	require.Equal(t, wasicore.ESUCCESS, errno)
}

func TestDispatchUnknownSocketOpsReturnNotSupported(t *testing.T) {
	sb := newTestSandbox(t)
	mem := make(guestmem.Slice, 64)
	assert.Equal(t, wasicore.ENOTSUP, Table["sock_shutdown"](sb, mem, []uint64{3, 0}))
	assert.Equal(t, wasicore.ENOTSUP, Table["poll_oneoff"](sb, mem, []uint64{0, 0, 0, 0}))
}
