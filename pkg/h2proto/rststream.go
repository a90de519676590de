package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// RstStreamFrame RST_STREAM帧(0x3) 立即终止一个流，固定4字节载荷，RFC 7540 section 6.4
type RstStreamFrame struct {
	Framer
	ErrorCode ErrCode
}

// NewRstStreamFrame NewRstStreamFrame
func NewRstStreamFrame(streamId uint32, errorCode ErrCode) *RstStreamFrame {
	frame := &RstStreamFrame{
		ErrorCode: errorCode,
	}
	frame.SetStreamId(streamId)
	return frame
}

// GetFrameType 获取帧类型
func (r *RstStreamFrame) GetFrameType() FrameType {
	return FrameRstStream
}

func (r *RstStreamFrame) String() string {
	return fmt.Sprintf("streamId:%d errorCode:%s", r.StreamId, r.ErrorCode)
}

func encodeRstStream(frame *RstStreamFrame, enc *Encoder) error {
	enc.WriteUint32(uint32(frame.ErrorCode))
	return nil
}

func encodeRstStreamSize(frame *RstStreamFrame) int {
	return errorCodeByteSize
}

func decodeRstStream(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	if len(payload) != errorCodeByteSize {
		return nil, errors.Wrapf(ErrFrameSize, "rst stream frame payload must be %d bytes, got %d", errorCodeByteSize, len(payload))
	}
	frame := &RstStreamFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	errorCode, err := dec.Uint32()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.ErrorCode = ErrCode(errorCode)
	return frame, nil
}
