package abi

import (
	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

// argsSizesGet(argc_ptr, argv_buf_size_ptr) -> Errno
func argsSizesGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	argcPtr, bufSizePtr := uint32(args[0]), uint32(args[1])
	argc, bufSize := s.ArgsSizesGet()
	if !mem.WriteUint32Le(argcPtr, argc) || !mem.WriteUint32Le(bufSizePtr, bufSize) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// argsGet(argv_ptr, argv_buf_ptr) -> Errno
func argsGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.ArgsGet(mem, uint32(args[0]), uint32(args[1]))
}

// environSizesGet(envc_ptr, environ_buf_size_ptr) -> Errno
func environSizesGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	envcPtr, bufSizePtr := uint32(args[0]), uint32(args[1])
	envc, bufSize := s.EnvironSizesGet()
	if !mem.WriteUint32Le(envcPtr, envc) || !mem.WriteUint32Le(bufSizePtr, bufSize) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// environGet(environ_ptr, environ_buf_ptr) -> Errno
func environGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.EnvironGet(mem, uint32(args[0]), uint32(args[1]))
}
