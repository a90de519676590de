package h2proto

import "go.uber.org/atomic"

// ProtoStats 收发统计
type ProtoStats struct {
	InFrames  *atomic.Int64 // recv frame count
	OutFrames *atomic.Int64
	InBytes   *atomic.Int64
	OutBytes  *atomic.Int64
}

// NewProtoStats NewProtoStats
func NewProtoStats() *ProtoStats {

	return &ProtoStats{
		InFrames:  atomic.NewInt64(0),
		OutFrames: atomic.NewInt64(0),
		InBytes:   atomic.NewInt64(0),
		OutBytes:  atomic.NewInt64(0),
	}
}
