package h2proto

import "fmt"

// Decoder 解码 大端序，带边界检查
type Decoder struct {
	p      []byte
	offset int
}

// NewDecoder NewDecoder
func NewDecoder(p []byte) *Decoder {
	return &Decoder{
		p: p,
	}
}

// Len 剩余长度
func (d *Decoder) Len() int {
	return len(d.p) - d.offset
}

// Uint8 Uint8
func (d *Decoder) Uint8() (uint8, error) {
	if d.offset+1 > len(d.p) {
		return 0, fmt.Errorf("Decoder couldn't read expect bytes %d of %d", d.offset+1, len(d.p))
	}
	b := d.p[d.offset]
	d.offset += 1
	return b, nil
}

// Uint16 Uint16
func (d *Decoder) Uint16() (uint16, error) {
	if d.offset+2 > len(d.p) {
		return 0, fmt.Errorf("Decoder couldn't read expect bytes %d of %d", d.offset+2, len(d.p))
	}
	b := d.p[d.offset : d.offset+2]
	d.offset += 2
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Uint32 Uint32
func (d *Decoder) Uint32() (uint32, error) {
	if d.offset+4 > len(d.p) {
		return 0, fmt.Errorf("Decoder couldn't read expect bytes %d of %d", d.offset+4, len(d.p))
	}
	b := d.p[d.offset : d.offset+4]
	d.offset += 4
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// Uint31 读31位字段，返回值和最高位(保留位或E位)
func (d *Decoder) Uint31() (uint32, bool, error) {
	v, err := d.Uint32()
	if err != nil {
		return 0, false, err
	}
	return v & 0x7FFFFFFF, v&0x80000000 != 0, nil
}

// Uint64 Uint64
func (d *Decoder) Uint64() (uint64, error) {
	if d.offset+8 > len(d.p) {
		return 0, fmt.Errorf("Decoder couldn't read expect bytes %d of %d", d.offset+8, len(d.p))
	}
	b := d.p[d.offset : d.offset+8]
	d.offset += 8
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 | uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7]), nil
}

// Bytes Bytes
func (d *Decoder) Bytes(num int) ([]byte, error) {
	if d.offset+num > len(d.p) {
		return nil, fmt.Errorf("Decoder couldn't read expect bytes %d of %d", d.offset+num, len(d.p))
	}
	b := d.p[d.offset : d.offset+num]
	d.offset += num
	return b, nil
}

// BinaryAll 读取所有剩余字节
func (d *Decoder) BinaryAll() ([]byte, error) {
	remains := d.Len()
	b := d.p[d.offset:]
	d.offset += remains
	return b, nil
}

// Skip 跳过num个字节
func (d *Decoder) Skip(num int) error {
	if d.offset+num > len(d.p) {
		return fmt.Errorf("Decoder couldn't read expect bytes %d of %d", d.offset+num, len(d.p))
	}
	d.offset += num
	return nil
}
