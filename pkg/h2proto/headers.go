package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// HEADERS帧标志位
const (
	FlagHeadersEndStream  uint8 = 0x1
	FlagHeadersEndHeaders uint8 = 0x4
	FlagHeadersPadded     uint8 = 0x8
	FlagHeadersPriority   uint8 = 0x20
)

// HeadersFrame HEADERS帧(0x1) 打开一个流并携带头部块分片，RFC 7540 section 6.2。
//
// 头部字段有两种形态：逻辑列表(HeaderList)和压缩后的头部块分片，
// 两者不能各自为准：改了逻辑列表就会使缓存的分片失效，直到重新压缩。
// 没有END_HEADERS标志时说明后续CONTINUATION帧还有剩余分片，
// 此时解码只原样保留分片，拼接和最终解压由调用方完成
type HeadersFrame struct {
	Framer
	PadLength        uint8  // 仅在PADDED标志置位时出现在线上
	Exclusive        bool   // 仅在PRIORITY标志置位时出现在线上
	StreamDependency uint32 // 同上 (31位)
	Weight           uint8  // 同上
	HeaderList       []HeaderField

	fragment []byte // 压缩后的头部块分片缓存
}

// NewHeadersFrame NewHeadersFrame
func NewHeadersFrame(streamId uint32, headerList []HeaderField) *HeadersFrame {
	frame := &HeadersFrame{
		HeaderList: headerList,
	}
	frame.SetStreamId(streamId)
	frame.SetFlag(FlagHeadersEndHeaders)
	return frame
}

// NewHeadersFrameWithPriority 带优先级段的HEADERS帧，自动置PRIORITY标志
func NewHeadersFrameWithPriority(streamId uint32, headerList []HeaderField, exclusive bool, streamDependency uint32, weight uint8) *HeadersFrame {
	frame := NewHeadersFrame(streamId, headerList)
	frame.Exclusive = exclusive
	frame.StreamDependency = streamDependency & 0x7FFFFFFF
	frame.Weight = weight
	frame.SetFlag(FlagHeadersPriority)
	return frame
}

// GetFrameType 获取帧类型
func (h *HeadersFrame) GetFrameType() FrameType {
	return FrameHeaders
}

// HeaderBlockFragment 当前缓存的头部块分片，可能为nil(逻辑列表改过还没重新压缩)
func (h *HeadersFrame) HeaderBlockFragment() []byte {
	return h.fragment
}

// SetHeaderBlockFragment 直接设置分片(比如转发场景)，清空逻辑列表
func (h *HeadersFrame) SetHeaderBlockFragment(fragment []byte) {
	h.fragment = fragment
	h.HeaderList = nil
}

// SetHeaderList 设置逻辑头部列表并使缓存的分片失效
func (h *HeadersFrame) SetHeaderList(headerList []HeaderField) {
	h.HeaderList = headerList
	h.fragment = nil
}

// UpdateHeaderBlockFragment 按当前上下文状态强制重新压缩。
// 压缩会修改上下文的动态表，调用顺序必须与帧的发送顺序一致
func (h *HeadersFrame) UpdateHeaderBlockFragment(ctx CompressionContext) error {
	fragment, err := ctx.Compress(h.HeaderList)
	if err != nil {
		return err
	}
	h.fragment = fragment
	return nil
}

// ensureFragment 编码前保证分片存在，已有缓存时不重复压缩
func (h *HeadersFrame) ensureFragment(ctx CompressionContext) error {
	if h.fragment != nil {
		return nil
	}
	if ctx == nil {
		return errors.Wrap(ErrInvalidFrame, "headers frame has no fragment and no compression context")
	}
	return h.UpdateHeaderBlockFragment(ctx)
}

func (h *HeadersFrame) HasEndStreamFlag() bool {
	return h.HasFlag(FlagHeadersEndStream)
}

func (h *HeadersFrame) SetEndStreamFlag() {
	h.SetFlag(FlagHeadersEndStream)
}

func (h *HeadersFrame) ClearEndStreamFlag() {
	h.ClearFlag(FlagHeadersEndStream)
}

func (h *HeadersFrame) HasEndHeadersFlag() bool {
	return h.HasFlag(FlagHeadersEndHeaders)
}

func (h *HeadersFrame) SetEndHeadersFlag() {
	h.SetFlag(FlagHeadersEndHeaders)
}

func (h *HeadersFrame) ClearEndHeadersFlag() {
	h.ClearFlag(FlagHeadersEndHeaders)
}

func (h *HeadersFrame) HasPaddedFlag() bool {
	return h.HasFlag(FlagHeadersPadded)
}

func (h *HeadersFrame) SetPaddedFlag() {
	h.SetFlag(FlagHeadersPadded)
}

func (h *HeadersFrame) ClearPaddedFlag() {
	h.ClearFlag(FlagHeadersPadded)
}

func (h *HeadersFrame) HasPriorityFlag() bool {
	return h.HasFlag(FlagHeadersPriority)
}

func (h *HeadersFrame) SetPriorityFlag() {
	h.SetFlag(FlagHeadersPriority)
}

func (h *HeadersFrame) ClearPriorityFlag() {
	h.ClearFlag(FlagHeadersPriority)
}

func (h *HeadersFrame) String() string {
	return fmt.Sprintf("streamId:%d headerCount:%d fragmentLen:%d endHeaders:%v endStream:%v", h.StreamId, len(h.HeaderList), len(h.fragment), h.HasEndHeadersFlag(), h.HasEndStreamFlag())
}

func encodeHeaders(frame *HeadersFrame, enc *Encoder) error {
	if frame.HasPaddedFlag() {
		enc.WriteUint8(frame.PadLength)
	}
	if frame.HasPriorityFlag() {
		enc.WriteUint31WithBit(frame.StreamDependency, frame.Exclusive)
		enc.WriteUint8(frame.Weight)
	}
	enc.WriteBytes(frame.fragment)
	if frame.HasPaddedFlag() {
		enc.WriteBytes(make([]byte, frame.PadLength))
	}
	return nil
}

func encodeHeadersSize(frame *HeadersFrame) int {
	size := len(frame.fragment)
	if frame.HasPaddedFlag() {
		size += padLengthByteSize + int(frame.PadLength)
	}
	if frame.HasPriorityFlag() {
		size += prioritySectionByteSize
	}
	return size
}

func decodeHeaders(framer Framer, payload []byte, ctx CompressionContext) (Frame, error) {
	frame := &HeadersFrame{}
	frame.Framer = framer

	dec := NewDecoder(payload)
	fixedSize := 0
	if frame.HasPaddedFlag() {
		padLength, err := dec.Uint8()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, "headers frame too short for pad length")
		}
		frame.PadLength = padLength
		fixedSize += padLengthByteSize
	}
	if frame.HasPriorityFlag() {
		streamDependency, exclusive, err := dec.Uint31()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, "headers frame too short for priority section")
		}
		weight, err := dec.Uint8()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, "headers frame too short for priority section")
		}
		frame.Exclusive = exclusive
		frame.StreamDependency = streamDependency
		frame.Weight = weight
		fixedSize += prioritySectionByteSize
	}
	if fixedSize+int(frame.PadLength) > len(payload) {
		return nil, errors.Wrapf(ErrFrameSize, "pad length %d exceeds headers frame payload %d", frame.PadLength, len(payload))
	}
	fragment, err := dec.Bytes(len(payload) - fixedSize - int(frame.PadLength))
	if err != nil {
		return nil, errors.Wrap(ErrFrameSize, err.Error())
	}
	frame.fragment = append([]byte(nil), fragment...)

	// 头部块不完整时(无END_HEADERS)不能过hpack解压，否则动态表状态错乱
	if frame.HasEndHeadersFlag() && ctx != nil {
		headerList, err := ctx.Decompress(frame.fragment)
		if err != nil {
			return nil, errors.Wrap(err, "decompress headers frame failed")
		}
		frame.HeaderList = headerList
	}
	return frame, nil
}
