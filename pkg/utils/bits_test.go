package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllOnes(t *testing.T) {
	assert.Equal(t, uint64(0), AllOnes[uint64](0))
	assert.Equal(t, uint64(0xff), AllOnes[uint64](8))
	assert.Equal(t, ^uint64(0), AllOnes[uint64](64))
	assert.Equal(t, uint8(0xff), AllOnes[uint8](8))
}

func TestMask(t *testing.T) {
	assert.Equal(t, uint32(0xff00), Mask[uint32](8, 8))
	assert.Equal(t, uint32(0x80000000), Mask[uint32](31, 1))
}

func TestFits(t *testing.T) {
	assert.True(t, Fits[uint64](3, 2))
	assert.False(t, Fits[uint64](4, 2))
	assert.True(t, Fits[uint64](^uint64(0), 64))
	assert.False(t, Fits[uint64](1, 0))
}

func TestBitView(t *testing.T) {
	var value uint32 = 0xa5
	view := CreateBitView(&value)

	assert.Equal(t, uint32(0x5), view.Read(0, 4))
	assert.Equal(t, uint32(0xa), view.Read(4, 4))

	view.Write(0x3, 8, 2)
	assert.Equal(t, uint32(0x3a5), value)

	view.Write(0xff, 12, 2)
	assert.Equal(t, uint32(0x33a5), value, "bits not fitting the range are ignored")
	assert.Equal(t, uint32(0x33a5), view.Value())
}
