package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// PriorityFrame PRIORITY帧(0x2) 流优先级通告，固定5字节载荷，RFC 7540 section 6.3
type PriorityFrame struct {
	Framer
	Exclusive        bool
	StreamDependency uint32 // 31位
	Weight           uint8
}

// NewPriorityFrame NewPriorityFrame
func NewPriorityFrame(streamId uint32, exclusive bool, streamDependency uint32, weight uint8) *PriorityFrame {
	frame := &PriorityFrame{
		Exclusive:        exclusive,
		StreamDependency: streamDependency & 0x7FFFFFFF,
		Weight:           weight,
	}
	frame.SetStreamId(streamId)
	return frame
}

// GetFrameType 获取帧类型
func (p *PriorityFrame) GetFrameType() FrameType {
	return FramePriority
}

func (p *PriorityFrame) String() string {
	return fmt.Sprintf("streamId:%d exclusive:%v streamDependency:%d weight:%d", p.StreamId, p.Exclusive, p.StreamDependency, p.Weight)
}

func encodePriority(frame *PriorityFrame, enc *Encoder) error {
	enc.WriteUint31WithBit(frame.StreamDependency, frame.Exclusive)
	enc.WriteUint8(frame.Weight)
	return nil
}

func encodePrioritySize(frame *PriorityFrame) int {
	return prioritySectionByteSize
}

func decodePriority(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	if len(payload) != prioritySectionByteSize {
		return nil, errors.Wrapf(ErrFrameSize, "priority frame payload must be %d bytes, got %d", prioritySectionByteSize, len(payload))
	}
	frame := &PriorityFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	streamDependency, exclusive, err := dec.Uint31()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	weight, err := dec.Uint8()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.Exclusive = exclusive
	frame.StreamDependency = streamDependency
	frame.Weight = weight
	return frame, nil
}
