package h2proto

import "fmt"

// FrameType 帧类型 type codes per RFC 7540 section 6.
// Values outside 0x0..0x9 are extension types: the header still parses
// and the payload is skipped, never rejected.
type FrameType uint8

const (
	FrameData         FrameType = iota // DATA (0x0)
	FrameHeaders                       // HEADERS (0x1)
	FramePriority                      // PRIORITY (0x2)
	FrameRstStream                     // RST_STREAM (0x3)
	FrameSettings                      // SETTINGS (0x4)
	FramePushPromise                   // PUSH_PROMISE (0x5)
	FramePing                          // PING (0x6)
	FrameGoaway                        // GOAWAY (0x7)
	FrameWindowUpdate                  // WINDOW_UPDATE (0x8)
	FrameContinuation                  // CONTINUATION (0x9)
)

func (t FrameType) String() string {
	switch t {
	case FrameData:
		return "DATA"
	case FrameHeaders:
		return "HEADERS"
	case FramePriority:
		return "PRIORITY"
	case FrameRstStream:
		return "RST_STREAM"
	case FrameSettings:
		return "SETTINGS"
	case FramePushPromise:
		return "PUSH_PROMISE"
	case FramePing:
		return "PING"
	case FrameGoaway:
		return "GOAWAY"
	case FrameWindowUpdate:
		return "WINDOW_UPDATE"
	case FrameContinuation:
		return "CONTINUATION"
	}
	return fmt.Sprintf("UNKNOWN[0x%x]", uint8(t))
}

const (
	// FrameHeaderLen 固定报头长度 every frame starts with these 9 octets.
	FrameHeaderLen = 9
	// MaxPayloadLen the length field is 24 bits wide.
	MaxPayloadLen = 1<<24 - 1

	padLengthByteSize        = 1
	prioritySectionByteSize  = 5
	errorCodeByteSize        = 4
	settingEntryByteSize     = 6
	promisedStreamIdByteSize = 4
	pingDataByteSize         = 8
	goawayMinByteSize        = 8
	windowIncrementByteSize  = 4
)

// Frame 帧 one typed protocol unit on an HTTP/2 connection.
type Frame interface {
	// GetFrameType 帧类型
	GetFrameType() FrameType
	// GetFlags 帧标志位，含义按帧类型解释
	GetFlags() uint8
	// GetStreamId 流ID (31位)
	GetStreamId() uint32
	SetStreamId(streamId uint32)
	// GetReserved 报头流ID字段的最高位，接收时忽略，发送时始终为0
	GetReserved() bool
	// GetPayloadLen 解码时为线上声明的载荷长度，编码时始终由载荷内容重新计算
	GetPayloadLen() uint32
}

// Framer 帧的基础报头
//
//	Length:24 | Type:8 | Flags:8 | R:1 Stream-Id:31
type Framer struct {
	FrameType  FrameType
	Flags      uint8
	Reserved   bool
	StreamId   uint32
	PayloadLen uint32
}

// GetFrameType 获取帧类型
func (f Framer) GetFrameType() FrameType {
	return f.FrameType
}

// GetFlags GetFlags
func (f Framer) GetFlags() uint8 {
	return f.Flags
}

// GetStreamId GetStreamId
func (f Framer) GetStreamId() uint32 {
	return f.StreamId
}

// SetStreamId 设置流ID，只保留低31位
func (f *Framer) SetStreamId(streamId uint32) {
	f.StreamId = streamId & 0x7FFFFFFF
}

// GetReserved GetReserved
func (f Framer) GetReserved() bool {
	return f.Reserved
}

// GetPayloadLen GetPayloadLen
func (f Framer) GetPayloadLen() uint32 {
	return f.PayloadLen
}

// HasFlag HasFlag
func (f Framer) HasFlag(flag uint8) bool {
	return f.Flags&flag != 0
}

// SetFlag SetFlag
func (f *Framer) SetFlag(flag uint8) {
	f.Flags |= flag
}

// ClearFlag ClearFlag
func (f *Framer) ClearFlag(flag uint8) {
	f.Flags &= ^flag
}

func (f Framer) String() string {
	return fmt.Sprintf("frameType:%s flags:0x%x streamId:%d payloadLen:%d", f.FrameType, f.Flags, f.StreamId, f.PayloadLen)
}

// framerFromBytes 解码9字节固定报头，data长度至少为FrameHeaderLen
func framerFromBytes(data []byte) Framer {
	f := Framer{}
	f.PayloadLen = uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	f.FrameType = FrameType(data[3])
	f.Flags = data[4]
	streamId := uint32(data[5])<<24 | uint32(data[6])<<16 | uint32(data[7])<<8 | uint32(data[8])
	f.Reserved = streamId&0x80000000 != 0
	f.StreamId = streamId & 0x7FFFFFFF
	return f
}
