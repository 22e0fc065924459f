package abi

import (
	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

// procExit(code) -> Errno
//
// proc_exit never returns control to the guest on a real runtime, but the
// dispatcher still reports ESUCCESS so hosts that call through this table
// directly (e.g. tests) get a normal return value.
func procExit(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	s.ProcExit(uint32(args[0]))
	return wasicore.ESUCCESS
}

// procRaise(sig) -> Errno
func procRaise(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.ProcRaise(wasicore.Signal(args[0]))
}

// randomGet(buf_ptr, buf_len) -> Errno
func randomGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	bufPtr, bufLen := uint32(args[0]), uint32(args[1])
	buf := make([]byte, bufLen)
	errno := s.RandomGet(buf)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.Write(bufPtr, buf) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// schedYield() -> Errno
func schedYield(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.SchedYield()
}

// pollOneoff(in_ptr, out_ptr, nsubscriptions, nevents_ptr) -> Errno
//
// Left unimplemented pending a stable upstream subscription/event wire
// format (see Sandbox.PollOneoff); the dispatcher still decodes nothing
// and reports ENOTSUP directly.
func pollOneoff(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return wasicore.ENOTSUP
}

// sockAccept(fd, flags, fd_ptr) -> Errno
func sockAccept(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return wasicore.ENOTSUP
}

// sockRecv(fd, ri_data_ptr, ri_data_len, ri_flags, ro_datalen_ptr, ro_flags_ptr) -> Errno
func sockRecv(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return wasicore.ENOTSUP
}

// sockSend(fd, si_data_ptr, si_data_len, si_flags, so_datalen_ptr) -> Errno
func sockSend(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return wasicore.ENOTSUP
}

// sockShutdown(fd, how) -> Errno
func sockShutdown(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return wasicore.ENOTSUP
}
