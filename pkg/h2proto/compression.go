package h2proto

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/net/http2/hpack"
)

// HeaderField 逻辑头部字段 the decompressed form of one header.
type HeaderField struct {
	Name      string
	Value     string
	Sensitive bool // 不进入动态表
}

// CompressionContext 压缩上下文 connection-scoped hpack state.
// 每次Compress/Decompress都会修改内部动态表，
// 同一连接上的调用必须严格按帧在线上出现的顺序串行执行，
// 编解码器内部不加锁，串行化由调用方保证。
type CompressionContext interface {
	// Compress 把头部字段列表压缩为头部块
	Compress(fields []HeaderField) ([]byte, error)
	// Decompress 把完整头部块解压为头部字段列表
	Decompress(block []byte) ([]HeaderField, error)
}

// DefaultHeaderTableSize hpack动态表默认大小
const DefaultHeaderTableSize uint32 = 4096

// HpackContext 默认压缩上下文，基于golang.org/x/net的hpack实现。
// 一端一个：Compress走发送方向的动态表，Decompress走接收方向的动态表。
type HpackContext struct {
	buf bytes.Buffer
	enc *hpack.Encoder
	dec *hpack.Decoder
}

// NewHpackContext maxTableSize为0时使用DefaultHeaderTableSize
func NewHpackContext(maxTableSize uint32) *HpackContext {
	if maxTableSize == 0 {
		maxTableSize = DefaultHeaderTableSize
	}
	c := &HpackContext{}
	c.enc = hpack.NewEncoder(&c.buf)
	c.enc.SetMaxDynamicTableSize(maxTableSize)
	c.dec = hpack.NewDecoder(maxTableSize, nil)
	return c
}

// Compress Compress
func (c *HpackContext) Compress(fields []HeaderField) ([]byte, error) {
	c.buf.Reset()
	for _, field := range fields {
		err := c.enc.WriteField(hpack.HeaderField{
			Name:      field.Name,
			Value:     field.Value,
			Sensitive: field.Sensitive,
		})
		if err != nil {
			return nil, errors.Wrapf(ErrCompression, "compress header field [%s] failed: %v", field.Name, err)
		}
	}
	block := make([]byte, c.buf.Len())
	copy(block, c.buf.Bytes())
	return block, nil
}

// Decompress Decompress
func (c *HpackContext) Decompress(block []byte) ([]HeaderField, error) {
	decoded, err := c.dec.DecodeFull(block)
	if err != nil {
		return nil, errors.Wrapf(ErrCompression, "decompress header block failed: %v", err)
	}
	fields := make([]HeaderField, 0, len(decoded))
	for _, field := range decoded {
		fields = append(fields, HeaderField{
			Name:      field.Name,
			Value:     field.Value,
			Sensitive: field.Sensitive,
		})
	}
	return fields, nil
}
