package h2proto

import "fmt"

// UnknownFrame 未知类型帧的哨兵结果，不是错误。
// RFC 7540 section 4.1要求对不认识的帧类型解析报头、丢弃载荷，
// 这样即使对端用了扩展帧类型，流同步也不会丢。
// 此帧不可编码
type UnknownFrame struct {
	Framer
	Payload []byte // 已从流中消费掉的载荷字节
}

func (u *UnknownFrame) String() string {
	return fmt.Sprintf("frameType:0x%x streamId:%d payloadLen:%d", uint8(u.FrameType), u.StreamId, len(u.Payload))
}
