package wasicore

import "github.com/wasicore/wasicore/guestmem"

// packedSize returns the total length of values once each is NUL-terminated
// and concatenated, matching ArgsSizesGet/EnvironSizesGet's buf_size.
func packedSize(values []string) uint32 {
	var n uint32
	for _, v := range values {
		n += uint32(len(v)) + 1
	}
	return n
}

// ArgsSizesGet returns (argc, argv_buf_size).
func (s *Sandbox) ArgsSizesGet() (argc, argvBufSize uint32) {
	return uint32(len(s.argv)), packedSize(s.argv)
}

// ArgsGet writes the offset table (argc uint32 entries at argv) and the
// packed, NUL-terminated argument bytes (at argvBuf) into guest memory.
func (s *Sandbox) ArgsGet(mem guestmem.Memory, argv, argvBuf uint32) Errno {
	return writeOffsetsAndValues(mem, s.argv, argv, argvBuf)
}

// EnvironSizesGet returns (envc, environ_buf_size).
func (s *Sandbox) EnvironSizesGet() (envc, environBufSize uint32) {
	return uint32(len(s.envp)), packedSize(s.envp)
}

// EnvironGet writes the offset table and packed "KEY=VALUE\0" bytes.
func (s *Sandbox) EnvironGet(mem guestmem.Memory, environ, environBuf uint32) Errno {
	return writeOffsetsAndValues(mem, s.envp, environ, environBuf)
}

// writeOffsetsAndValues is shared by args_get/environ_get: it writes
// len(values) u32 offsets into guest memory at offsets, then the
// NUL-terminated values themselves packed starting at buf.
func writeOffsetsAndValues(mem guestmem.Memory, values []string, offsets, buf uint32) Errno {
	cursor := buf
	for i, v := range values {
		if !mem.WriteUint32Le(offsets+uint32(i)*4, cursor) {
			return EFAULT
		}
		if !mem.Write(cursor, []byte(v)) {
			return EFAULT
		}
		cursor += uint32(len(v))
		if !mem.WriteByte(cursor, 0) {
			return EFAULT
		}
		cursor++
	}
	return ESUCCESS
}
