package serializer

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DataInput reads big endian values written by a DataOutput
type DataInput struct {
	data []byte
	pos  int
}

// NewDataInput creates a DataInput reading from data
func NewDataInput(data []byte) *DataInput {
	return &DataInput{data: data}
}

// Remaining returns the number of unread bytes
func (in *DataInput) Remaining() int {
	return len(in.data) - in.pos
}

// next returns the next n bytes and advances the read position
func (in *DataInput) next(n int, what string) ([]byte, error) {
	if n < 0 || in.pos+n > len(in.data) {
		return nil, fmt.Errorf("%w: data too short for %s (need %d bytes at offset %d, have %d)",
			ErrMalformed, what, n, in.pos, len(in.data)-in.pos)
	}
	b := in.data[in.pos : in.pos+n]
	in.pos += n
	return b, nil
}

// --------------------------------------------------------------------------
// Primitive Readers
// --------------------------------------------------------------------------

func (in *DataInput) ReadInt8() (int8, error) {
	b, err := in.next(1, "int8")
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (in *DataInput) ReadBool() (bool, error) {
	b, err := in.next(1, "bool")
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool value %d", ErrMalformed, b[0])
	}
}

func (in *DataInput) ReadUint16() (uint16, error) {
	b, err := in.next(2, "uint16")
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (in *DataInput) ReadInt32() (int32, error) {
	b, err := in.next(4, "int32")
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (in *DataInput) ReadInt64() (int64, error) {
	b, err := in.next(8, "int64")
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (in *DataInput) ReadFloat32() (float32, error) {
	b, err := in.next(4, "float32")
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadBytes reads a byte slice written by DataOutput.WriteBytes. The result is a copy
func (in *DataInput) ReadBytes() ([]byte, error) {
	n, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	b, err := in.next(int(n), "bytes")
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads a nullable string written by DataOutput.WriteString.
// A nil result means the string was absent on the wire
func (in *DataInput) ReadString() (*string, error) {
	marker, err := in.next(1, "string marker")
	if err != nil {
		return nil, err
	}

	var n int
	switch marker[0] {
	case markerNullString:
		return nil, nil
	case markerString:
		l, err := in.ReadUint16()
		if err != nil {
			return nil, err
		}
		n = int(l)
	case markerHugeString:
		l, err := in.ReadInt32()
		if err != nil {
			return nil, err
		}
		n = int(l)
	default:
		return nil, fmt.Errorf("%w: unexpected string marker %d", ErrMalformed, marker[0])
	}

	b, err := in.next(n, "string data")
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// ReadStrings reads a list written by DataOutput.WriteStrings
func (in *DataInput) ReadStrings() ([]string, error) {
	n, err := in.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return nil, nil
	}
	if n < 0 || int(n) > in.Remaining() {
		return nil, fmt.Errorf("%w: invalid string list length %d", ErrMalformed, n)
	}
	list := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		s, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: nil element in string list", ErrMalformed)
		}
		list = append(list, *s)
	}
	return list, nil
}
