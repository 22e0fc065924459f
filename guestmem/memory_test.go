package guestmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceBounds(t *testing.T) {
	mem := make(Slice, 16)

	require.True(t, mem.WriteUint32Le(0, 0xdeadbeef))
	v, ok := mem.ReadUint32Le(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0xdeadbeef), v)

	// Offset + width exceeds the store: must fail without touching memory.
	_, ok = mem.ReadUint64Le(12)
	assert.False(t, ok)
	assert.False(t, mem.WriteUint64Le(12, 1))

	_, ok = mem.Read(10, 10)
	assert.False(t, ok)

	b, ok := mem.Read(4, 4)
	require.True(t, ok)
	assert.Len(t, b, 4)
}

func TestScatterGather(t *testing.T) {
	mem := make(Slice, 32)
	iovs := []IovecRange{{Buf: 0, BufLen: 5}, {Buf: 5, BufLen: 6}}

	n, ok := ScatterInto(mem, iovs, []byte("hello world"))
	require.True(t, ok)
	assert.EqualValues(t, 11, n)

	data, ok := GatherFrom(mem, iovs)
	require.True(t, ok)
	assert.Equal(t, "hello world", string(data))
}

func TestScatterOutOfBounds(t *testing.T) {
	mem := make(Slice, 4)
	_, ok := ScatterInto(mem, []IovecRange{{Buf: 0, BufLen: 8}}, []byte("overflow"))
	assert.False(t, ok)
}
