package h2proto

import (
	"bytes"
)

// Encoder 编码者 大端序
type Encoder struct {
	w *bytes.Buffer
}

// NewEncoder NewEncoder
func NewEncoder() *Encoder {
	return &Encoder{
		w: bytes.NewBuffer([]byte{}),
	}
}

// Bytes Bytes
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}

// Len Len
func (e *Encoder) Len() int {
	return e.w.Len()
}

// WriteByte WriteByte
func (e *Encoder) WriteByte(b byte) error {
	return e.w.WriteByte(b)
}

// WriteUint8 WriteUint8
func (e *Encoder) WriteUint8(i uint8) {
	_ = e.w.WriteByte(i)
}

// WriteUint16 WriteUint16
func (e *Encoder) WriteUint16(i uint16) {
	e.w.Write([]byte{byte(i >> 8), byte(i & 0xFF)})
}

// WriteUint24 写24位长度字段
func (e *Encoder) WriteUint24(i uint32) {
	e.w.Write([]byte{
		byte(i >> 16),
		byte(i >> 8),
		byte(i & 0xFF),
	})
}

// WriteUint32 WriteUint32
func (e *Encoder) WriteUint32(i uint32) {
	e.w.Write([]byte{
		byte(i >> 24),
		byte(i >> 16),
		byte(i >> 8),
		byte(i & 0xFF),
	})
}

// WriteUint64 WriteUint64
func (e *Encoder) WriteUint64(i uint64) {
	e.w.Write([]byte{
		byte(i >> 56),
		byte(i >> 48),
		byte(i >> 40),
		byte(i >> 32),
		byte(i >> 24),
		byte(i >> 16),
		byte(i >> 8),
		byte(i & 0xFF),
	})
}

// WriteUint31 写31位字段，最高位(保留位)始终为0
func (e *Encoder) WriteUint31(i uint32) {
	e.WriteUint32(i & 0x7FFFFFFF)
}

// WriteUint31WithBit 写31位字段并设置最高位，用于PRIORITY的E位
func (e *Encoder) WriteUint31WithBit(i uint32, bit bool) {
	v := i & 0x7FFFFFFF
	if bit {
		v |= 0x80000000
	}
	e.WriteUint32(v)
}

// WriteBytes WriteBytes
func (e *Encoder) WriteBytes(b []byte) {
	if len(b) > 0 {
		e.w.Write(b)
	}
}
