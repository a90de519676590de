package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// GoawayFrame GOAWAY帧(0x7) 发起连接关闭或通告严重错误，RFC 7540 section 6.8。
// 载荷至少8字节，多出来的部分是不透明的调试数据
type GoawayFrame struct {
	Framer
	LastStreamReserved  bool // Last-Stream-ID字段的最高位，接收时忽略，发送时始终为0
	LastStreamId        uint32
	ErrorCode           ErrCode
	AdditionalDebugData []byte
}

// NewGoawayFrame NewGoawayFrame
func NewGoawayFrame(lastStreamId uint32, errorCode ErrCode, additionalDebugData []byte) *GoawayFrame {
	return &GoawayFrame{
		LastStreamId:        lastStreamId & 0x7FFFFFFF,
		ErrorCode:           errorCode,
		AdditionalDebugData: additionalDebugData,
	}
}

// GetFrameType 获取帧类型
func (g *GoawayFrame) GetFrameType() FrameType {
	return FrameGoaway
}

func (g *GoawayFrame) String() string {
	return fmt.Sprintf("lastStreamId:%d errorCode:%s debugDataLen:%d", g.LastStreamId, g.ErrorCode, len(g.AdditionalDebugData))
}

func encodeGoaway(frame *GoawayFrame, enc *Encoder) error {
	enc.WriteUint31(frame.LastStreamId)
	enc.WriteUint32(uint32(frame.ErrorCode))
	enc.WriteBytes(frame.AdditionalDebugData)
	return nil
}

func encodeGoawaySize(frame *GoawayFrame) int {
	return goawayMinByteSize + len(frame.AdditionalDebugData)
}

func decodeGoaway(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	if len(payload) < goawayMinByteSize {
		return nil, errors.Wrapf(ErrFrameSize, "goaway frame payload must be at least %d bytes, got %d", goawayMinByteSize, len(payload))
	}
	frame := &GoawayFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	lastStreamId, reserved, err := dec.Uint31()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	errorCode, err := dec.Uint32()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	debugData, _ := dec.BinaryAll()
	frame.LastStreamReserved = reserved
	frame.LastStreamId = lastStreamId
	frame.ErrorCode = ErrCode(errorCode)
	frame.AdditionalDebugData = append([]byte(nil), debugData...)
	return frame, nil
}
