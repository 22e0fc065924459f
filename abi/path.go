package abi

import (
	"github.com/wasicore/wasicore"
	"github.com/wasicore/wasicore/guestmem"
)

// pathCreateDirectory(fd, path_ptr, path_len) -> Errno
func pathCreateDirectory(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	path, ok := readString(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	return s.PathCreateDirectory(wasicore.Fd(args[0]), path)
}

// pathRemoveDirectory(fd, path_ptr, path_len) -> Errno
func pathRemoveDirectory(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	path, ok := readString(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	return s.PathRemoveDirectory(wasicore.Fd(args[0]), path)
}

// pathUnlinkFile(fd, path_ptr, path_len) -> Errno
func pathUnlinkFile(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	path, ok := readString(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	return s.PathUnlinkFile(wasicore.Fd(args[0]), path)
}

// pathFilestatGet(fd, flags, path_ptr, path_len, buf_ptr) -> Errno
func pathFilestatGet(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	flags := wasicore.Lookupflags(args[1])
	path, ok := readString(mem, uint32(args[2]), uint32(args[3]))
	if !ok {
		return wasicore.EFAULT
	}
	stat, errno := s.PathFilestatGet(wasicore.Fd(args[0]), flags, path)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	b := stat.Marshal()
	if !mem.Write(uint32(args[4]), b[:]) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// pathFilestatSetTimes(fd, flags, path_ptr, path_len, atim, mtim, fst_flags) -> Errno
func pathFilestatSetTimes(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	flags := wasicore.Lookupflags(args[1])
	path, ok := readString(mem, uint32(args[2]), uint32(args[3]))
	if !ok {
		return wasicore.EFAULT
	}
	atim := wasicore.Timestamp(args[4])
	mtim := wasicore.Timestamp(args[5])
	fst := wasicore.Fstflags(args[6])
	return s.PathFilestatSetTimes(wasicore.Fd(args[0]), flags, path, atim, mtim, fst)
}

// pathLink(old_fd, old_flags, old_path_ptr, old_path_len, new_fd, new_path_ptr, new_path_len) -> Errno
func pathLink(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	oldFlags := wasicore.Lookupflags(args[1])
	oldPath, ok := readString(mem, uint32(args[2]), uint32(args[3]))
	if !ok {
		return wasicore.EFAULT
	}
	newPath, ok := readString(mem, uint32(args[5]), uint32(args[6]))
	if !ok {
		return wasicore.EFAULT
	}
	return s.PathLink(wasicore.Fd(args[0]), oldFlags, oldPath, wasicore.Fd(args[4]), newPath)
}

// pathReadlink(fd, path_ptr, path_len, buf_ptr, buf_len, bufused_ptr) -> Errno
func pathReadlink(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	path, ok := readString(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	target, errno := s.PathReadlink(wasicore.Fd(args[0]), path)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	bufPtr, bufLen := uint32(args[3]), uint32(args[4])
	b := []byte(target)
	if uint32(len(b)) > bufLen {
		b = b[:bufLen]
	}
	if !mem.Write(bufPtr, b) {
		return wasicore.EFAULT
	}
	if !mem.WriteUint32Le(uint32(args[5]), uint32(len(b))) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}

// pathRename(fd, old_path_ptr, old_path_len, new_fd, new_path_ptr, new_path_len) -> Errno
func pathRename(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	oldPath, ok := readString(mem, uint32(args[1]), uint32(args[2]))
	if !ok {
		return wasicore.EFAULT
	}
	newPath, ok := readString(mem, uint32(args[4]), uint32(args[5]))
	if !ok {
		return wasicore.EFAULT
	}
	return s.PathRename(wasicore.Fd(args[0]), oldPath, wasicore.Fd(args[3]), newPath)
}

// pathSymlink(old_path_ptr, old_path_len, fd, new_path_ptr, new_path_len) -> Errno
func pathSymlink(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	oldPath, ok := readString(mem, uint32(args[0]), uint32(args[1]))
	if !ok {
		return wasicore.EFAULT
	}
	newPath, ok := readString(mem, uint32(args[3]), uint32(args[4]))
	if !ok {
		return wasicore.EFAULT
	}
	return s.PathSymlink(oldPath, wasicore.Fd(args[2]), newPath)
}

// pathOpen(dir_fd, dirflags, path_ptr, path_len, oflags, rights_base,
// rights_inheriting, fdflags, opened_fd_ptr) -> Errno
func pathOpen(s *wasicore.Sandbox, mem guestmem.Memory, args []uint64) wasicore.Errno {
	dirFlags := wasicore.Lookupflags(args[1])
	path, ok := readString(mem, uint32(args[2]), uint32(args[3]))
	if !ok {
		return wasicore.EFAULT
	}
	oflags := wasicore.Oflags(args[4])
	rightsBase := wasicore.Rights(args[5])
	rightsInheriting := wasicore.Rights(args[6])
	fdflags := wasicore.Fdflags(args[7])
	fd, errno := s.PathOpen(wasicore.Fd(args[0]), dirFlags, path, oflags, rightsBase, rightsInheriting, fdflags)
	if errno != wasicore.ESUCCESS {
		return errno
	}
	if !mem.WriteUint32Le(uint32(args[8]), uint32(fd)) {
		return wasicore.EFAULT
	}
	return wasicore.ESUCCESS
}
