package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// PUSH_PROMISE帧标志位
const (
	FlagPushPromiseEndHeaders uint8 = 0x4
	FlagPushPromisePadded     uint8 = 0x8
)

// PushPromiseFrame PUSH_PROMISE帧(0x5) 预告服务端将要发起的流，RFC 7540 section 6.6。
// 头部块分片原样携带，不过压缩上下文，拼接解压由调用方完成
type PushPromiseFrame struct {
	Framer
	PadLength           uint8 // 仅在PADDED标志置位时出现在线上
	PromisedReserved    bool  // 承诺流ID字段的最高位，接收时忽略，发送时始终为0
	PromisedStreamId    uint32
	HeaderBlockFragment []byte
}

// NewPushPromiseFrame NewPushPromiseFrame
func NewPushPromiseFrame(streamId uint32, promisedStreamId uint32, headerBlockFragment []byte) *PushPromiseFrame {
	frame := &PushPromiseFrame{
		PromisedStreamId:    promisedStreamId & 0x7FFFFFFF,
		HeaderBlockFragment: headerBlockFragment,
	}
	frame.SetStreamId(streamId)
	frame.SetFlag(FlagPushPromiseEndHeaders)
	return frame
}

// GetFrameType 获取帧类型
func (p *PushPromiseFrame) GetFrameType() FrameType {
	return FramePushPromise
}

func (p *PushPromiseFrame) HasEndHeadersFlag() bool {
	return p.HasFlag(FlagPushPromiseEndHeaders)
}

func (p *PushPromiseFrame) SetEndHeadersFlag() {
	p.SetFlag(FlagPushPromiseEndHeaders)
}

func (p *PushPromiseFrame) ClearEndHeadersFlag() {
	p.ClearFlag(FlagPushPromiseEndHeaders)
}

func (p *PushPromiseFrame) HasPaddedFlag() bool {
	return p.HasFlag(FlagPushPromisePadded)
}

func (p *PushPromiseFrame) SetPaddedFlag() {
	p.SetFlag(FlagPushPromisePadded)
}

func (p *PushPromiseFrame) ClearPaddedFlag() {
	p.ClearFlag(FlagPushPromisePadded)
}

func (p *PushPromiseFrame) String() string {
	return fmt.Sprintf("streamId:%d promisedStreamId:%d fragmentLen:%d", p.StreamId, p.PromisedStreamId, len(p.HeaderBlockFragment))
}

func encodePushPromise(frame *PushPromiseFrame, enc *Encoder) error {
	if frame.HasPaddedFlag() {
		enc.WriteUint8(frame.PadLength)
	}
	enc.WriteUint31(frame.PromisedStreamId)
	enc.WriteBytes(frame.HeaderBlockFragment)
	if frame.HasPaddedFlag() {
		enc.WriteBytes(make([]byte, frame.PadLength))
	}
	return nil
}

func encodePushPromiseSize(frame *PushPromiseFrame) int {
	size := promisedStreamIdByteSize + len(frame.HeaderBlockFragment)
	if frame.HasPaddedFlag() {
		size += padLengthByteSize + int(frame.PadLength)
	}
	return size
}

func decodePushPromise(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	frame := &PushPromiseFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	fixedSize := promisedStreamIdByteSize
	if frame.HasPaddedFlag() {
		padLength, err := dec.Uint8()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, "push promise frame too short for pad length")
		}
		frame.PadLength = padLength
		fixedSize += padLengthByteSize
	}
	promisedStreamId, reserved, err := dec.Uint31()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, "push promise frame too short for promised stream id")
	}
	frame.PromisedReserved = reserved
	frame.PromisedStreamId = promisedStreamId
	if fixedSize+int(frame.PadLength) > len(payload) {
		return nil, errors.Wrapf(ErrFrameSize, "pad length %d exceeds push promise frame payload %d", frame.PadLength, len(payload))
	}
	fragment, err := dec.Bytes(len(payload) - fixedSize - int(frame.PadLength))
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.HeaderBlockFragment = append([]byte(nil), fragment...)
	return frame, nil
}
