// Package guestmem implements the bounds-checked little-endian bridge into
// a guest's linear memory, independent of any particular Wasm module
// instance: the backing store is just a (base, byte_length) byte slice the
// embedder owns.
package guestmem

import "encoding/binary"

// Memory is a bounds-checked view over a guest's linear memory. Every
// accessor returns ok=false instead of panicking when the requested range
// falls outside the backing store.
type Memory interface {
	Len() uint32

	ReadByte(offset uint32) (byte, bool)
	ReadUint16Le(offset uint32) (uint16, bool)
	ReadUint32Le(offset uint32) (uint32, bool)
	ReadUint64Le(offset uint32) (uint64, bool)
	Read(offset, byteCount uint32) ([]byte, bool)

	WriteByte(offset uint32, v byte) bool
	WriteUint16Le(offset uint32, v uint16) bool
	WriteUint32Le(offset uint32, v uint32) bool
	WriteUint64Le(offset uint32, v uint64) bool
	Write(offset uint32, v []byte) bool
}

// Slice adapts a plain []byte into Memory. It is used directly in tests and
// by any embedder whose guest memory is already a contiguous Go slice.
type Slice []byte

func (s Slice) Len() uint32 { return uint32(len(s)) }

func (s Slice) hasSize(offset, size uint64) bool {
	return offset+size <= uint64(len(s))
}

func (s Slice) ReadByte(offset uint32) (byte, bool) {
	if !s.hasSize(uint64(offset), 1) {
		return 0, false
	}
	return s[offset], true
}

func (s Slice) ReadUint16Le(offset uint32) (uint16, bool) {
	if !s.hasSize(uint64(offset), 2) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(s[offset:]), true
}

func (s Slice) ReadUint32Le(offset uint32) (uint32, bool) {
	if !s.hasSize(uint64(offset), 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(s[offset:]), true
}

func (s Slice) ReadUint64Le(offset uint32) (uint64, bool) {
	if !s.hasSize(uint64(offset), 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(s[offset:]), true
}

func (s Slice) Read(offset, byteCount uint32) ([]byte, bool) {
	if !s.hasSize(uint64(offset), uint64(byteCount)) {
		return nil, false
	}
	return s[offset : offset+byteCount : offset+byteCount], true
}

func (s Slice) WriteByte(offset uint32, v byte) bool {
	if !s.hasSize(uint64(offset), 1) {
		return false
	}
	s[offset] = v
	return true
}

func (s Slice) WriteUint16Le(offset uint32, v uint16) bool {
	if !s.hasSize(uint64(offset), 2) {
		return false
	}
	binary.LittleEndian.PutUint16(s[offset:], v)
	return true
}

func (s Slice) WriteUint32Le(offset uint32, v uint32) bool {
	if !s.hasSize(uint64(offset), 4) {
		return false
	}
	binary.LittleEndian.PutUint32(s[offset:], v)
	return true
}

func (s Slice) WriteUint64Le(offset uint32, v uint64) bool {
	if !s.hasSize(uint64(offset), 8) {
		return false
	}
	binary.LittleEndian.PutUint64(s[offset:], v)
	return true
}

func (s Slice) Write(offset uint32, v []byte) bool {
	if !s.hasSize(uint64(offset), uint64(len(v))) {
		return false
	}
	copy(s[offset:], v)
	return true
}

var _ Memory = Slice(nil)

// IovecRange is a single (buf, buf_len) pair already decoded from guest
// memory, describing one scatter/gather segment.
type IovecRange struct{ Buf, BufLen uint32 }

// ScatterInto writes data into the iovec ranges described by iovs in order,
// returning the number of bytes written, e.g. to scatter a single host read
// into a guest's vectored buffers.
func ScatterInto(mem Memory, iovs []IovecRange, data []byte) (n uint32, ok bool) {
	for _, iov := range iovs {
		if len(data) == 0 {
			break
		}
		chunk := iov.BufLen
		if uint32(len(data)) < chunk {
			chunk = uint32(len(data))
		}
		if !mem.Write(iov.Buf, data[:chunk]) {
			return n, false
		}
		data = data[chunk:]
		n += chunk
	}
	return n, true
}

// GatherFrom concatenates the bytes described by iovs into one slice.
func GatherFrom(mem Memory, iovs []IovecRange) (data []byte, ok bool) {
	for _, iov := range iovs {
		b, ok := mem.Read(iov.Buf, iov.BufLen)
		if !ok {
			return nil, false
		}
		data = append(data, b...)
	}
	return data, true
}
