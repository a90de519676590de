package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// PING帧标志位
const (
	FlagPingAck uint8 = 0x1
)

// PingFrame PING帧(0x6) 连接存活探测，固定8字节不透明数据，RFC 7540 section 6.7。
// 对端的ACK应答必须原样回显不透明数据，校验回显是调用方的事，
// 编解码器只负责把8个字节忠实搬运
type PingFrame struct {
	Framer
	OpaqueData uint64
}

// NewPingFrame NewPingFrame
func NewPingFrame(opaqueData uint64) *PingFrame {
	return &PingFrame{
		OpaqueData: opaqueData,
	}
}

// NewPingAckFrame 对指定PING的ACK应答，回显其不透明数据
func NewPingAckFrame(opaqueData uint64) *PingFrame {
	frame := NewPingFrame(opaqueData)
	frame.SetFlag(FlagPingAck)
	return frame
}

// GetFrameType 获取帧类型
func (p *PingFrame) GetFrameType() FrameType {
	return FramePing
}

func (p *PingFrame) HasAckFlag() bool {
	return p.HasFlag(FlagPingAck)
}

func (p *PingFrame) SetAckFlag() {
	p.SetFlag(FlagPingAck)
}

func (p *PingFrame) ClearAckFlag() {
	p.ClearFlag(FlagPingAck)
}

func (p *PingFrame) String() string {
	return fmt.Sprintf("opaqueData:0x%x ack:%v", p.OpaqueData, p.HasAckFlag())
}

func encodePing(frame *PingFrame, enc *Encoder) error {
	enc.WriteUint64(frame.OpaqueData)
	return nil
}

func encodePingSize(frame *PingFrame) int {
	return pingDataByteSize
}

func decodePing(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	if len(payload) != pingDataByteSize {
		return nil, errors.Wrapf(ErrFrameSize, "ping frame payload must be %d bytes, got %d", pingDataByteSize, len(payload))
	}
	frame := &PingFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	opaqueData, err := dec.Uint64()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.OpaqueData = opaqueData
	return frame, nil
}
