package h2proto

import "github.com/pkg/errors"

var (
	// ErrFrameSize 声明的长度与帧类型的固定结构不符，或填充超出载荷范围
	ErrFrameSize = errors.New("frame size error")
	// ErrCompression 头部块压缩/解压失败，连接级别的致命错误
	ErrCompression = errors.New("compression error")
	// ErrInvalidFrame 编码了一个语义非法的帧
	ErrInvalidFrame = errors.New("invalid frame")
)
