package h2proto

import (
	"fmt"

	"github.com/pkg/errors"
)

// SETTINGS帧标志位
const (
	FlagSettingsAck uint8 = 0x1
)

// SettingsFrame SETTINGS帧(0x4) 连接级配置参数的通告与确认，RFC 7540 section 6.5。
// 永远在流0上，载荷是若干(16位标识,32位值)对。
// ACK帧按协议必须是空载荷
type SettingsFrame struct {
	Framer
	Settings Settings
	// AckPayloadViolation 解码时发现ACK帧带了非空载荷，
	// 按协议这是PROTOCOL_ERROR，帧本身照常解出来，是否断连由调用方决定
	AckPayloadViolation bool
}

// NewSettingsFrame NewSettingsFrame
func NewSettingsFrame(settings Settings) *SettingsFrame {
	return &SettingsFrame{
		Settings: settings,
	}
}

// NewSettingsAckFrame 空载荷的ACK帧
func NewSettingsAckFrame() *SettingsFrame {
	frame := &SettingsFrame{}
	frame.SetFlag(FlagSettingsAck)
	return frame
}

// GetFrameType 获取帧类型
func (s *SettingsFrame) GetFrameType() FrameType {
	return FrameSettings
}

func (s *SettingsFrame) HasAckFlag() bool {
	return s.HasFlag(FlagSettingsAck)
}

func (s *SettingsFrame) SetAckFlag() {
	s.SetFlag(FlagSettingsAck)
}

func (s *SettingsFrame) ClearAckFlag() {
	s.ClearFlag(FlagSettingsAck)
}

func (s *SettingsFrame) String() string {
	return fmt.Sprintf("ack:%v settings:%v", s.HasAckFlag(), s.Settings)
}

func encodeSettings(frame *SettingsFrame, enc *Encoder) error {
	if frame.HasAckFlag() && len(frame.Settings) > 0 {
		return errors.Wrap(ErrInvalidFrame, "settings ack frame must carry an empty payload")
	}
	for _, setting := range frame.Settings {
		enc.WriteUint16(uint16(setting.Id))
		enc.WriteUint32(setting.Value)
	}
	return nil
}

func encodeSettingsSize(frame *SettingsFrame) int {
	return len(frame.Settings) * settingEntryByteSize
}

func decodeSettings(framer Framer, payload []byte, _ CompressionContext) (Frame, error) {
	if len(payload)%settingEntryByteSize != 0 {
		return nil, errors.Wrapf(ErrFrameSize, "settings frame payload %d is not a multiple of %d", len(payload), settingEntryByteSize)
	}
	frame := &SettingsFrame{}
	frame.Framer = framer
	if frame.HasAckFlag() && len(payload) > 0 {
		frame.AckPayloadViolation = true
	}

	dec := NewDecoder(payload)
	count := len(payload) / settingEntryByteSize
	if count > 0 {
		frame.Settings = make(Settings, 0, count)
	}
	for i := 0; i < count; i++ {
		id, err := dec.Uint16()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, err.Error())
		}
		value, err := dec.Uint32()
		if err != nil {
			return nil, errors.Wrap(ErrFrameSize, err.Error())
		}
		frame.Settings = append(frame.Settings, Setting{Id: SettingId(id), Value: value})
	}
	return frame, nil
}
