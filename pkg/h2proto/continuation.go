package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// CONTINUATION帧标志位
const (
	FlagContinuationEndHeaders uint8 = 0x4
)

// ContinuationFrame CONTINUATION帧(0x9) 续传头部块分片，RFC 7540 section 6.10。
// 整个载荷都是分片，协议设计上不支持填充
type ContinuationFrame struct {
	Framer
	HeaderBlockFragment []byte
}

// NewContinuationFrame NewContinuationFrame
func NewContinuationFrame(streamId uint32, headerBlockFragment []byte) *ContinuationFrame {
	frame := &ContinuationFrame{
		HeaderBlockFragment: headerBlockFragment,
	}
	frame.SetStreamId(streamId)
	return frame
}

// GetFrameType 获取帧类型
func (c *ContinuationFrame) GetFrameType() FrameType {
	return FrameContinuation
}

func (c *ContinuationFrame) HasEndHeadersFlag() bool {
	return c.HasFlag(FlagContinuationEndHeaders)
}

func (c *ContinuationFrame) SetEndHeadersFlag() {
	c.SetFlag(FlagContinuationEndHeaders)
}

func (c *ContinuationFrame) ClearEndHeadersFlag() {
	c.ClearFlag(FlagContinuationEndHeaders)
}

func (c *ContinuationFrame) String() string {
	return fmt.Sprintf("streamId:%d fragmentLen:%d endHeaders:%v", c.StreamId, len(c.HeaderBlockFragment), c.HasEndHeadersFlag())
}

func encodeContinuation(frame *ContinuationFrame, enc *Encoder) error {
	enc.WriteBytes(frame.HeaderBlockFragment)
	return nil
}

func encodeContinuationSize(frame *ContinuationFrame) int {
	return len(frame.HeaderBlockFragment)
}

func decodeContinuation(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	frame := &ContinuationFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	fragment, err := dec.BinaryAll()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.HeaderBlockFragment = append([]byte(nil), fragment...)
	return frame, nil
}
