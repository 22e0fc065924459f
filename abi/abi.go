// Package abi is the dispatcher layer: it parses the scalar and
// guest-memory arguments a host passes for one WASI function call, invokes
// the matching wasicore.Sandbox method, and writes results back through the
// memory bridge.
//
// Each entry is plain Go: a func(*wasicore.Sandbox, guestmem.Memory,
// []uint64) wasicore.Errno per operation, registered by name so any host
// (not just a bytecode-compiling Wasm runtime) can wire it into its own
// trampoline.
package abi

import (
	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

// Func is one dispatcher entry point: args holds the guest's scalar
// arguments and guest-memory offsets in call order, exactly as the WASI
// function signature declares them. The return value is the WASI errno the
// guest receives as the function's i32 result.
type Func func(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno

// Table maps a WASI function name (e.g. "fd_read") to its dispatcher.
var Table = map[string]Func{
	"args_get":        argsGet,
	"args_sizes_get":  argsSizesGet,
	"environ_get":      environGet,
	"environ_sizes_get": environSizesGet,

	"clock_res_get":  clockResGet,
	"clock_time_get": clockTimeGet,

	"fd_advise":             fdAdvise,
	"fd_allocate":           fdAllocate,
	"fd_close":              fdClose,
	"fd_datasync":           fdDatasync,
	"fd_fdstat_get":         fdFdstatGet,
	"fd_fdstat_set_flags":   fdFdstatSetFlags,
	"fd_fdstat_set_rights":  fdFdstatSetRights,
	"fd_filestat_get":       fdFilestatGet,
	"fd_filestat_set_size":  fdFilestatSetSize,
	"fd_filestat_set_times": fdFilestatSetTimes,
	"fd_pread":              fdPread,
	"fd_prestat_get":        fdPrestatGet,
	"fd_prestat_dir_name":   fdPrestatDirName,
	"fd_pwrite":             fdPwrite,
	"fd_read":               fdRead,
	"fd_readdir":            fdReaddir,
	"fd_renumber":           fdRenumber,
	"fd_seek":               fdSeek,
	"fd_sync":               fdSync,
	"fd_tell":               fdTell,
	"fd_write":              fdWrite,

	"path_create_directory":   pathCreateDirectory,
	"path_filestat_get":       pathFilestatGet,
	"path_filestat_set_times": pathFilestatSetTimes,
	"path_link":               pathLink,
	"path_open":               pathOpen,
	"path_readlink":           pathReadlink,
	"path_remove_directory":   pathRemoveDirectory,
	"path_rename":             pathRename,
	"path_symlink":            pathSymlink,
	"path_unlink_file":        pathUnlinkFile,

	"proc_exit":    procExit,
	"proc_raise":   procRaise,
	"random_get":   randomGet,
	"sched_yield":  schedYield,

	"poll_oneoff":   pollOneoff,
	"sock_accept":   sockAccept,
	"sock_recv":     sockRecv,
	"sock_send":     sockSend,
	"sock_shutdown": sockShutdown,
}

// readIovecs decodes count (buf_ptr, buf_len) pairs starting at offset into
// guest-memory byte slices backed directly by mem; each referenced range
// must lie within the backing store.
func readIovecs(mem guestmem.Memory, offset uint32, count uint32) ([][]byte, bool) {
	iovs := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		buf, ok := mem.ReadUint32Le(offset)
		if !ok {
			return nil, false
		}
		length, ok := mem.ReadUint32Le(offset + 4)
		if !ok {
			return nil, false
		}
		b, ok := mem.Read(buf, length)
		if !ok {
			return nil, false
		}
		iovs = append(iovs, b)
		offset += 8
	}
	return iovs, true
}

// readString reads a length-prefixed guest byte range as a Go string. The
// guest provides (ptr, len) with no NUL guarantee.
func readString(mem guestmem.Memory, ptr, length uint32) (string, bool) {
	b, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(b), true
}
