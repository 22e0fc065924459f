package abi

import (
	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

// fdAdvise(fd, offset, len, advice) -> Errno
func fdAdvise(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	offset := wasicore.Filesize(args[1])
	length := wasicore.Filesize(args[2])
	advice := wasicore.Advice(args[3])
	return s.FdAdvise(fd, offset, length, advice)
}

// fdAllocate(fd, offset, len) -> Errno
func fdAllocate(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdAllocate(wasicore.Fd(args[0]), wasicore.Filesize(args[1]), wasicore.Filesize(args[2]))
}

// fdClose(fd) -> Errno
func fdClose(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdClose(wasicore.Fd(args[0]))
}

// fdDatasync(fd) -> Errno
func fdDatasync(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdDatasync(wasicore.Fd(args[0]))
}

// fdSync(fd) -> Errno
func fdSync(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdSync(wasicore.Fd(args[0]))
}

// fdFdstatGet(fd, fdstat_ptr) -> Errno
func fdFdstatGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	ptr := uint32(args[1])
	stat, errno := s.FdFdstatGet(fd)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	b := stat.Marshal()
	if !mem.Write(ptr, b[:]) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdFdstatSetFlags(fd, flags) -> Errno
func fdFdstatSetFlags(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdFdstatSetFlags(wasicore.Fd(args[0]), wasicore.Fdflags(args[1]))
}

// fdFdstatSetRights(fd, rights_base, rights_inheriting) -> Errno
func fdFdstatSetRights(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdFdstatSetRights(wasicore.Fd(args[0]), wasicore.Rights(args[1]), wasicore.Rights(args[2]))
}

// fdFilestatGet(fd, filestat_ptr) -> Errno
func fdFilestatGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	ptr := uint32(args[1])
	stat, errno := s.FdFilestatGet(fd)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	b := stat.Marshal()
	if !mem.Write(ptr, b[:]) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdFilestatSetSize(fd, size) -> Errno
func fdFilestatSetSize(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdFilestatSetSize(wasicore.Fd(args[0]), wasicore.Filesize(args[1]))
}

// fdFilestatSetTimes(fd, atim, mtim, fst_flags) -> Errno
func fdFilestatSetTimes(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	atim := wasicore.Timestamp(args[1])
	mtim := wasicore.Timestamp(args[2])
	fst := wasicore.Fstflags(args[3])
	return s.FdFilestatSetTimes(fd, atim, mtim, fst)
}

// fdRead(fd, iovs_ptr, iovs_len, nread_ptr) -> Errno
func fdRead(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	iovs, ok := readIovecs(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	n, errno := s.FdRead(fd, iovs)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint32Le(uint32(args[3]), uint32(n)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdWrite(fd, iovs_ptr, iovs_len, nwritten_ptr) -> Errno
func fdWrite(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	iovs, ok := readIovecs(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	n, errno := s.FdWrite(fd, iovs)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint32Le(uint32(args[3]), uint32(n)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdPread(fd, iovs_ptr, iovs_len, offset, nread_ptr) -> Errno
func fdPread(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	iovs, ok := readIovecs(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	offset := wasicore.Filesize(args[3])
	n, errno := s.FdPread(fd, iovs, offset)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint32Le(uint32(args[4]), uint32(n)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdPwrite(fd, iovs_ptr, iovs_len, offset, nwritten_ptr) -> Errno
func fdPwrite(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	iovs, ok := readIovecs(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	offset := wasicore.Filesize(args[3])
	n, errno := s.FdPwrite(fd, iovs, offset)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint32Le(uint32(args[4]), uint32(n)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdSeek(fd, offset, whence, newoffset_ptr) -> Errno
func fdSeek(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	offset := wasicore.Filedelta(int64(args[1]))
	whence := wasicore.Whence(args[2])
	newOff, errno := s.FdSeek(fd, offset, whence)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint64Le(uint32(args[3]), uint64(newOff)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdTell(fd, offset_ptr) -> Errno
func fdTell(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	off, errno := s.FdTell(fd)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint64Le(uint32(args[1]), uint64(off)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdPrestatGet(fd, prestat_ptr) -> Errno
func fdPrestatGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	prestat, errno := s.FdPrestatGet(fd)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	b := prestat.Marshal()
	if !mem.Write(uint32(args[1]), b[:]) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdPrestatDirName(fd, path_ptr, path_len) -> Errno
func fdPrestatDirName(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	bufLen := uint32(args[2])
	name, errno := s.FdPrestatDirName(fd, bufLen)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.Write(uint32(args[1]), name) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// fdRenumber(fd, to) -> Errno
func fdRenumber(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	return s.FdRenumber(wasicore.Fd(args[0]), wasicore.Fd(args[1]))
}

// fdReaddir(fd, buf_ptr, buf_len, cookie, bufused_ptr) -> Errno
func fdReaddir(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	fd := wasicore.Fd(args[0])
	bufPtr, bufLen := uint32(args[1]), uint32(args[2])
	cookie := wasicore.Dircookie(args[3])
	buf, ok := mem.Read(bufPtr, bufLen)
	if !ok {
		return wasicore.EFAULT
	}
	used, errno := s.FdReaddir(fd, buf, cookie)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint32Le(uint32(args[4]), uint32(used)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}
