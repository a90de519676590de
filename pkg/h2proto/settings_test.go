package h2proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsEncodeAndDecode(t *testing.T) {
	frame := NewSettingsFrame(Settings{
		{Id: SettingHeaderTableSize, Value: 4096},
		{Id: SettingMaxConcurrentStreams, Value: 100},
		{Id: SettingInitialWindowSize, Value: 65535},
	})
	codec := New()
	// 编码
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(3*settingEntryByteSize), framerFromBytes(frameBytes).PayloadLen)
	// 解码
	resultFrame, _, err := codec.DecodeFrame(frameBytes, nil)
	assert.NoError(t, err)
	resultSettingsFrame, ok := resultFrame.(*SettingsFrame)
	assert.Equal(t, true, ok)

	// 正确与否比较
	assert.Equal(t, frame.Settings, resultSettingsFrame.Settings)
	assert.Equal(t, false, resultSettingsFrame.HasAckFlag())
	assert.Equal(t, false, resultSettingsFrame.AckPayloadViolation)
}

func TestSettingsDuplicateIdLastWins(t *testing.T) {
	frame := NewSettingsFrame(Settings{
		{Id: SettingMaxConcurrentStreams, Value: 1},
		{Id: SettingMaxConcurrentStreams, Value: 2},
	})
	codec := New()
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	resultFrame, _, err := codec.DecodeFrame(frameBytes, nil)
	assert.NoError(t, err)
	resultSettingsFrame := resultFrame.(*SettingsFrame)
	// 线上顺序保留，映射时后到的生效
	assert.Equal(t, 2, len(resultSettingsFrame.Settings))
	assert.Equal(t, map[SettingId]uint32{SettingMaxConcurrentStreams: 2}, resultSettingsFrame.Settings.Map())

	value, ok := resultSettingsFrame.Settings.Value(SettingMaxConcurrentStreams)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint32(2), value)
}

func TestSettingsUnknownIdPreserved(t *testing.T) {
	// 不认识的参数标识要原样保留
	frame := NewSettingsFrame(Settings{
		{Id: SettingId(0xff), Value: 42},
	})
	codec := New()
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	resultFrame, _, err := codec.DecodeFrame(frameBytes, nil)
	assert.NoError(t, err)
	assert.Equal(t, frame.Settings, resultFrame.(*SettingsFrame).Settings)
}

func TestSettingsDecodeWrongSize(t *testing.T) {
	// 载荷长度必须是6的倍数
	raw := buildRawFrame(FrameSettings, 0, 0, make([]byte, 7))
	codec := New()
	_, _, err := codec.DecodeFrame(raw, nil)
	assert.ErrorIs(t, err, ErrFrameSize)
}

func TestSettingsAckEncodeWithPairsFails(t *testing.T) {
	frame := NewSettingsFrame(Settings{{Id: SettingEnablePush, Value: 0}})
	frame.SetAckFlag()
	codec := New()
	_, err := codec.EncodeFrame(frame, nil)
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

func TestSettingsAckDecodeWithPayloadFlagged(t *testing.T) {
	// 线上来的非空ACK载荷不是致命错误，但要标记出来，不能当空载荷吞掉
	payload := []byte{0x0, 0x3, 0x0, 0x0, 0x0, 0x64}
	raw := buildRawFrame(FrameSettings, FlagSettingsAck, 0, payload)
	codec := New()
	resultFrame, _, err := codec.DecodeFrame(raw, nil)
	assert.NoError(t, err)
	resultSettingsFrame := resultFrame.(*SettingsFrame)
	assert.Equal(t, true, resultSettingsFrame.AckPayloadViolation)
	assert.Equal(t, true, resultSettingsFrame.HasAckFlag())
	assert.Equal(t, 1, len(resultSettingsFrame.Settings))
}

func TestSettingsAckEncodeAndDecode(t *testing.T) {
	frame := NewSettingsAckFrame()
	codec := New()
	frameBytes, err := codec.EncodeFrame(frame, nil)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), framerFromBytes(frameBytes).PayloadLen)

	resultFrame, _, err := codec.DecodeFrame(frameBytes, nil)
	assert.NoError(t, err)
	resultSettingsFrame := resultFrame.(*SettingsFrame)
	assert.Equal(t, true, resultSettingsFrame.HasAckFlag())
	assert.Equal(t, 0, len(resultSettingsFrame.Settings))
	assert.Equal(t, false, resultSettingsFrame.AckPayloadViolation)
}
