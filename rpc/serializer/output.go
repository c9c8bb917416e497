package serializer

import (
	"encoding/binary"
	"math"
)

// String markers, a single byte in front of every (nullable) string
const (
	markerNullString byte = 69
	markerString     byte = 87
	markerHugeString byte = 89
)

// maxShortString is the largest string length encoded with a uint16 length prefix
const maxShortString = math.MaxUint16

// DataOutput is a growable big endian output buffer
type DataOutput struct {
	buf []byte
}

// NewDataOutput creates a new DataOutput with the given initial capacity
func NewDataOutput(capacity int) *DataOutput {
	return &DataOutput{buf: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes. The slice is only valid until the next write
func (o *DataOutput) Bytes() []byte {
	return o.buf
}

// Len returns the number of bytes written so far
func (o *DataOutput) Len() int {
	return len(o.buf)
}

// Reset discards all written bytes but keeps the underlying storage
func (o *DataOutput) Reset() {
	o.buf = o.buf[:0]
}

// --------------------------------------------------------------------------
// Primitive Writers
// --------------------------------------------------------------------------

func (o *DataOutput) WriteInt8(v int8) {
	o.buf = append(o.buf, byte(v))
}

func (o *DataOutput) WriteBool(v bool) {
	if v {
		o.buf = append(o.buf, 1)
	} else {
		o.buf = append(o.buf, 0)
	}
}

func (o *DataOutput) WriteUint16(v uint16) {
	o.buf = binary.BigEndian.AppendUint16(o.buf, v)
}

func (o *DataOutput) WriteInt32(v int32) {
	o.buf = binary.BigEndian.AppendUint32(o.buf, uint32(v))
}

func (o *DataOutput) WriteInt64(v int64) {
	o.buf = binary.BigEndian.AppendUint64(o.buf, uint64(v))
}

func (o *DataOutput) WriteFloat32(v float32) {
	o.buf = binary.BigEndian.AppendUint32(o.buf, math.Float32bits(v))
}

// WriteBytes writes a byte slice with an int32 length prefix. A nil slice is
// written with length -1 so that nil and empty survive a round trip
func (o *DataOutput) WriteBytes(b []byte) {
	if b == nil {
		o.WriteInt32(-1)
		return
	}
	o.WriteInt32(int32(len(b)))
	o.buf = append(o.buf, b...)
}

// WriteString writes a nullable string. The encoding is one marker byte
// followed by
//   - nothing for a nil string
//   - a uint16 length and the UTF-8 bytes for strings up to 64 KB
//   - an int32 length and the UTF-8 bytes for larger strings
func (o *DataOutput) WriteString(s *string) {
	if s == nil {
		o.buf = append(o.buf, markerNullString)
		return
	}
	if len(*s) <= maxShortString {
		o.buf = append(o.buf, markerString)
		o.WriteUint16(uint16(len(*s)))
	} else {
		o.buf = append(o.buf, markerHugeString)
		o.WriteInt32(int32(len(*s)))
	}
	o.buf = append(o.buf, *s...)
}

// WriteStrings writes a nullable list of non nil strings with an int32 count prefix
func (o *DataOutput) WriteStrings(list []string) {
	if list == nil {
		o.WriteInt32(-1)
		return
	}
	o.WriteInt32(int32(len(list)))
	for i := range list {
		o.WriteString(&list[i])
	}
}
