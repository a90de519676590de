package h2proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildRawFrame 手工构造一帧线上字节，流ID字段不掩码，便于测试保留位
func buildRawFrame(frameType FrameType, flags uint8, streamId uint32, payload []byte) []byte {
	enc := NewEncoder()
	enc.WriteUint24(uint32(len(payload)))
	enc.WriteUint8(uint8(frameType))
	enc.WriteUint8(flags)
	enc.WriteUint32(streamId)
	enc.WriteBytes(payload)
	return enc.Bytes()
}

func TestRecvFrameAndSendFrame(t *testing.T) {
	sendCtx := NewHpackContext(0)
	recvCtx := NewHpackContext(0)
	codec := New()
	conn := &bytes.Buffer{}

	// 模拟一个连接上的帧序列
	err := codec.SendFrame(conn, NewSettingsFrame(Settings{{Id: SettingMaxFrameSize, Value: 16384}}), nil)
	assert.NoError(t, err)
	err = codec.SendFrame(conn, NewHeadersFrame(1, testHeaderList()), sendCtx)
	assert.NoError(t, err)
	err = codec.SendFrame(conn, NewDataFrame(1, []byte("body")), nil)
	assert.NoError(t, err)

	frame, err := codec.RecvFrame(conn, recvCtx)
	assert.NoError(t, err)
	assert.Equal(t, FrameSettings, frame.GetFrameType())

	frame, err = codec.RecvFrame(conn, recvCtx)
	assert.NoError(t, err)
	assert.Equal(t, testHeaderList(), frame.(*HeadersFrame).HeaderList)

	frame, err = codec.RecvFrame(conn, recvCtx)
	assert.NoError(t, err)
	assert.Equal(t, []byte("body"), frame.(*DataFrame).Data)

	assert.Equal(t, int64(3), codec.Stats.OutFrames.Load())
	assert.Equal(t, int64(3), codec.Stats.InFrames.Load())
	assert.Equal(t, codec.Stats.OutBytes.Load(), codec.Stats.InBytes.Load())
}

func TestRecvFrameShortRead(t *testing.T) {
	// 载荷声明10字节只给5字节，短读是传输错误原样上抛
	raw := buildRawFrame(FrameData, 0, 1, make([]byte, 10))
	conn := bytes.NewBuffer(raw[:FrameHeaderLen+5])
	codec := New()
	_, err := codec.RecvFrame(conn, nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFrameSize)
}

func TestRecvFrameUnknownTypeSkipped(t *testing.T) {
	// 未知类型0x42：报头照常解析，10字节载荷被消费，下一帧还能对齐读出
	payload := make([]byte, 10)
	unknownRaw := buildRawFrame(FrameType(0x42), 0x5, 9, payload)
	pingRaw := buildRawFrame(FramePing, 0, 0, make([]byte, 8))
	conn := bytes.NewBuffer(append(unknownRaw, pingRaw...))

	codec := New()
	frame, err := codec.RecvFrame(conn, nil)
	assert.NoError(t, err)
	unknownFrame, ok := frame.(*UnknownFrame)
	assert.Equal(t, true, ok)
	assert.Equal(t, FrameType(0x42), unknownFrame.GetFrameType())
	assert.Equal(t, uint32(9), unknownFrame.GetStreamId())
	assert.Equal(t, 10, len(unknownFrame.Payload))

	// 流同步没丢，紧接着就是PING帧的报头
	frame, err = codec.RecvFrame(conn, nil)
	assert.NoError(t, err)
	assert.Equal(t, FramePing, frame.GetFrameType())
	assert.Equal(t, 0, conn.Len())
}

func TestDecodeFrameIncomplete(t *testing.T) {
	raw := buildRawFrame(FrameData, 0, 1, []byte("hello"))
	codec := New()
	// 不足一个报头
	frame, size, err := codec.DecodeFrame(raw[:4], nil)
	assert.NoError(t, err)
	assert.Nil(t, frame)
	assert.Equal(t, 0, size)
	// 报头齐了载荷没齐
	frame, size, err = codec.DecodeFrame(raw[:FrameHeaderLen+2], nil)
	assert.NoError(t, err)
	assert.Nil(t, frame)
	assert.Equal(t, 0, size)
	// 完整一帧
	frame, size, err = codec.DecodeFrame(raw, nil)
	assert.NoError(t, err)
	assert.Equal(t, len(raw), size)
	assert.Equal(t, []byte("hello"), frame.(*DataFrame).Data)
}

func TestDecodeFrameConsumesExactly(t *testing.T) {
	// 连续两帧在一个缓冲里，消费字节数要正好指向下一帧报头
	first := buildRawFrame(FrameRstStream, 0, 3, []byte{0x0, 0x0, 0x0, 0x8})
	second := buildRawFrame(FramePing, 0, 0, make([]byte, 8))
	data := append(append([]byte(nil), first...), second...)

	codec := New()
	frame, size, err := codec.DecodeFrame(data, nil)
	assert.NoError(t, err)
	assert.Equal(t, len(first), size)
	assert.Equal(t, ErrCodeCancel, frame.(*RstStreamFrame).ErrorCode)

	frame, size, err = codec.DecodeFrame(data[size:], nil)
	assert.NoError(t, err)
	assert.Equal(t, len(second), size)
	assert.Equal(t, FramePing, frame.GetFrameType())
}

func TestEncodeUnknownFrameFails(t *testing.T) {
	codec := New()
	_, err := codec.EncodeFrame(&UnknownFrame{}, nil)
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

func TestEncodeLengthAlwaysRecomputed(t *testing.T) {
	// 报头里的长度永远按载荷内容重算，调用方乱填的PayloadLen不生效
	frame := NewDataFrame(1, []byte("abc"))
	frame.PayloadLen = 9999
	codec := New()
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(3), framerFromBytes(frameBytes).PayloadLen)
}
