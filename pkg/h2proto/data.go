package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// DATA帧标志位
const (
	FlagDataEndStream uint8 = 0x1
	FlagDataPadded    uint8 = 0x8
)

// DataFrame DATA帧(0x0) 承载流上的任意字节序列，RFC 7540 section 6.1。
// 可以带填充来掩盖真实载荷大小，填充字节是不透明的，永远不被解释
type DataFrame struct {
	Framer
	PadLength uint8 // 仅在PADDED标志置位时出现在线上
	Data      []byte
}

// NewDataFrame NewDataFrame
func NewDataFrame(streamId uint32, data []byte) *DataFrame {
	frame := &DataFrame{
		Data: data,
	}
	frame.SetStreamId(streamId)
	return frame
}

// NewDataFramePadded 带填充的DATA帧，自动置PADDED标志
func NewDataFramePadded(streamId uint32, data []byte, padLength uint8) *DataFrame {
	frame := NewDataFrame(streamId, data)
	frame.PadLength = padLength
	frame.SetFlag(FlagDataPadded)
	return frame
}

// GetFrameType 获取帧类型
func (d *DataFrame) GetFrameType() FrameType {
	return FrameData
}

func (d *DataFrame) HasEndStreamFlag() bool {
	return d.HasFlag(FlagDataEndStream)
}

func (d *DataFrame) SetEndStreamFlag() {
	d.SetFlag(FlagDataEndStream)
}

func (d *DataFrame) ClearEndStreamFlag() {
	d.ClearFlag(FlagDataEndStream)
}

func (d *DataFrame) HasPaddedFlag() bool {
	return d.HasFlag(FlagDataPadded)
}

func (d *DataFrame) SetPaddedFlag() {
	d.SetFlag(FlagDataPadded)
}

func (d *DataFrame) ClearPaddedFlag() {
	d.ClearFlag(FlagDataPadded)
}

func (d *DataFrame) String() string {
	return fmt.Sprintf("streamId:%d dataLen:%d padLength:%d endStream:%v", d.StreamId, len(d.Data), d.PadLength, d.HasEndStreamFlag())
}

func encodeData(frame *DataFrame, enc *Encoder) error {
	if frame.HasPaddedFlag() {
		enc.WriteUint8(frame.PadLength)
	}
	enc.WriteBytes(frame.Data)
	if frame.HasPaddedFlag() {
		enc.WriteBytes(make([]byte, frame.PadLength))
	}
	return nil
}

func encodeDataSize(frame *DataFrame) int {
	size := len(frame.Data)
	if frame.HasPaddedFlag() {
		size += padLengthByteSize + int(frame.PadLength)
	}
	return size
}

func decodeData(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	frame := &DataFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	dataLen := len(payload)
	if frame.HasPaddedFlag() {
		padLength, err := dec.Uint8()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, "data frame too short for pad length")
		}
		if padLengthByteSize+int(padLength) > len(payload) {
			return nil, errors.Wrapf(ErrFrameSize, "pad length %d exceeds data frame payload %d", padLength, len(payload))
		}
		frame.PadLength = padLength
		dataLen = len(payload) - padLengthByteSize - int(padLength)
	}
	data, err := dec.Bytes(dataLen)
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.Data = append([]byte(nil), data...)
	return frame, nil
}
