package h2proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowUpdateEncodeAndDecode(t *testing.T) {
	frame := NewWindowUpdateFrame(3, 65535)
	codec := New()
	// 编码
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	// 解码
	resultFrame, _, err := codec.DecodeFrame(frameBytes, nil)
	assert.NoError(t, err)
	resultWindowUpdateFrame, ok := resultFrame.(*WindowUpdateFrame)
	assert.Equal(t, true, ok)

	// 正确与否比较
	assert.Equal(t, uint32(65535), resultWindowUpdateFrame.WindowSizeIncrement)
	assert.Equal(t, uint32(3), resultWindowUpdateFrame.GetStreamId())
}

func TestWindowUpdateDecodeZeroIncrement(t *testing.T) {
	// 增量0按协议是错误，但判定归上层，这里只要原样解出来
	raw := buildRawFrame(FrameWindowUpdate, 0, 1, make([]byte, 4))
	codec := New()
	resultFrame, _, err := codec.DecodeFrame(raw, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), resultFrame.(*WindowUpdateFrame).WindowSizeIncrement)
}

func TestWindowUpdateDecodeWrongSize(t *testing.T) {
	raw := buildRawFrame(FrameWindowUpdate, 0, 1, make([]byte, 3))
	codec := New()
	_, _, err := codec.DecodeFrame(raw, nil)
	assert.ErrorIs(t, err, ErrFrameSize)
}

func TestWindowUpdateDecodeReservedBitIgnored(t *testing.T) {
	payload := []byte{0x80, 0x0, 0xff, 0xff}
	raw := buildRawFrame(FrameWindowUpdate, 0, 1, payload)
	codec := New()
	resultFrame, _, err := codec.DecodeFrame(raw, nil)
	assert.NoError(t, err)
	resultWindowUpdateFrame := resultFrame.(*WindowUpdateFrame)
	assert.Equal(t, uint32(0xffff), resultWindowUpdateFrame.WindowSizeIncrement)
	assert.Equal(t, true, resultWindowUpdateFrame.IncrementReserved)
}
