package h2proto

import "fmt"

// SettingId 设置参数标识，RFC 7540 section 6.5.2。
// 不认识的标识要原样保留，发送方可以合法发送本实现不认识的参数
type SettingId uint16

const (
	SettingHeaderTableSize      SettingId = 0x1
	SettingEnablePush           SettingId = 0x2
	SettingMaxConcurrentStreams SettingId = 0x3
	SettingInitialWindowSize    SettingId = 0x4
	SettingMaxFrameSize         SettingId = 0x5
	SettingMaxHeaderListSize    SettingId = 0x6
)

func (s SettingId) String() string {
	switch s {
	case SettingHeaderTableSize:
		return "SETTINGS_HEADER_TABLE_SIZE"
	case SettingEnablePush:
		return "SETTINGS_ENABLE_PUSH"
	case SettingMaxConcurrentStreams:
		return "SETTINGS_MAX_CONCURRENT_STREAMS"
	case SettingInitialWindowSize:
		return "SETTINGS_INITIAL_WINDOW_SIZE"
	case SettingMaxFrameSize:
		return "SETTINGS_MAX_FRAME_SIZE"
	case SettingMaxHeaderListSize:
		return "SETTINGS_MAX_HEADER_LIST_SIZE"
	}
	return fmt.Sprintf("SETTINGS_UNKNOWN[0x%x]", uint16(s))
}

// Setting 单个设置项
type Setting struct {
	Id    SettingId
	Value uint32
}

func (s Setting) String() string {
	return fmt.Sprintf("%s=%d", s.Id, s.Value)
}

// Settings 设置项列表，保持线上顺序
type Settings []Setting

// Map 生成映射，同一标识重复出现时后到的生效
func (s Settings) Map() map[SettingId]uint32 {
	m := make(map[SettingId]uint32, len(s))
	for _, setting := range s {
		m[setting.Id] = setting.Value
	}
	return m
}

// Value 取标识对应的值，重复时返回最后一次出现的值
func (s Settings) Value(id SettingId) (uint32, bool) {
	var value uint32
	var ok bool
	for _, setting := range s {
		if setting.Id == id {
			value = setting.Value
			ok = true
		}
	}
	return value, ok
}
