package abi

import (
	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

// clockResGet(clock_id, resolution_ptr) -> Errno
func clockResGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	id := wasicore.ClockID(args[0])
	resPtr := uint32(args[1])
	res, errno := s.ClockResGet(id)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint64Le(resPtr, res) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// clockTimeGet(clock_id, precision, time_ptr) -> Errno
func clockTimeGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	id := wasicore.ClockID(args[0])
	precision := args[1]
	timePtr := uint32(args[2])
	t, errno := s.ClockTimeGet(id, precision)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint64Le(timePtr, t) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}
