package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// WindowUpdateFrame WINDOW_UPDATE帧(0x8) 流量控制窗口增量，固定4字节载荷，RFC 7540 section 6.9。
// 增量为0按协议是PROTOCOL_ERROR，但判定是上层的事，这里只解出原始值
type WindowUpdateFrame struct {
	Framer
	IncrementReserved   bool // 增量字段的最高位，接收时忽略，发送时始终为0
	WindowSizeIncrement uint32
}

// NewWindowUpdateFrame NewWindowUpdateFrame
func NewWindowUpdateFrame(streamId uint32, windowSizeIncrement uint32) *WindowUpdateFrame {
	frame := &WindowUpdateFrame{
		WindowSizeIncrement: windowSizeIncrement & 0x7FFFFFFF,
	}
	frame.SetStreamId(streamId)
	return frame
}

// GetFrameType 获取帧类型
func (w *WindowUpdateFrame) GetFrameType() FrameType {
	return FrameWindowUpdate
}

func (w *WindowUpdateFrame) String() string {
	return fmt.Sprintf("streamId:%d windowSizeIncrement:%d", w.StreamId, w.WindowSizeIncrement)
}

func encodeWindowUpdate(frame *WindowUpdateFrame, enc *Encoder) error {
	enc.WriteUint31(frame.WindowSizeIncrement)
	return nil
}

func encodeWindowUpdateSize(frame *WindowUpdateFrame) int {
	return windowIncrementByteSize
}

func decodeWindowUpdate(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	if len(payload) != windowIncrementByteSize {
		return nil, errors.Wrapf(ErrFrameSize, "window update frame payload must be %d bytes, got %d", windowIncrementByteSize, len(payload))
	}
	frame := &WindowUpdateFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	increment, reserved, err := dec.Uint31()
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.IncrementReserved = reserved
	frame.WindowSizeIncrement = increment
	return frame, nil
}
