package h2proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramerFromBytes(t *testing.T) {
	raw := []byte{0x0, 0x0, 0x8, 0x6, 0x1, 0x0, 0x0, 0x0, 0x0}
	framer := framerFromBytes(raw)
	assert.Equal(t, uint32(8), framer.PayloadLen)
	assert.Equal(t, FramePing, framer.FrameType)
	assert.Equal(t, uint8(0x1), framer.Flags)
	assert.Equal(t, uint32(0), framer.StreamId)
	assert.Equal(t, false, framer.Reserved)
}

func TestFramerReservedBitIgnored(t *testing.T) {
	// 流ID字段最高位置1，解出的ID不受影响
	raw := []byte{0x0, 0x0, 0x0, 0x4, 0x0, 0x80, 0x0, 0x0, 0x5}
	framer := framerFromBytes(raw)
	assert.Equal(t, uint32(5), framer.StreamId)
	assert.Equal(t, true, framer.Reserved)
}

func TestFramerReservedBitErasedOnEncode(t *testing.T) {
	frame := NewDataFrame(5, []byte("x"))
	frame.Reserved = true
	codec := New()
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	// 发送时保留位始终为0
	assert.Equal(t, byte(0x0), frameBytes[5]&0x80)
	assert.Equal(t, uint32(5), framerFromBytes(frameBytes).StreamId)
}

func TestSetStreamIdMasksTo31Bits(t *testing.T) {
	framer := Framer{}
	framer.SetStreamId(0xFFFFFFFF)
	assert.Equal(t, uint32(0x7FFFFFFF), framer.GetStreamId())
}

func TestFrameTypeString(t *testing.T) {
	assert.Equal(t, "DATA", FrameData.String())
	assert.Equal(t, "CONTINUATION", FrameContinuation.String())
	assert.Equal(t, "UNKNOWN[0x42]", FrameType(0x42).String())
}

func TestFramerFlags(t *testing.T) {
	framer := Framer{}
	framer.SetFlag(FlagHeadersEndHeaders)
	framer.SetFlag(FlagHeadersPadded)
	assert.Equal(t, true, framer.HasFlag(FlagHeadersEndHeaders))
	framer.ClearFlag(FlagHeadersPadded)
	assert.Equal(t, false, framer.HasFlag(FlagHeadersPadded))
	assert.Equal(t, uint8(FlagHeadersEndHeaders), framer.GetFlags())
}
