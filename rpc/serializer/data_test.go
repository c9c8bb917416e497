package serializer

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

// TestPrimitiveRoundTrip tests that all primitive writers are read back by their readers
func TestPrimitiveRoundTrip(t *testing.T) {
	out := NewDataOutput(0)
	out.WriteInt8(-7)
	out.WriteBool(true)
	out.WriteBool(false)
	out.WriteUint16(math.MaxUint16)
	out.WriteInt32(math.MinInt32)
	out.WriteInt64(math.MaxInt64)
	out.WriteFloat32(0.75)
	out.WriteBytes([]byte("payload"))
	out.WriteBytes(nil)
	out.WriteBytes([]byte{})

	in := NewDataInput(out.Bytes())

	if v, err := in.ReadInt8(); err != nil || v != -7 {
		t.Errorf("ReadInt8: expected -7, got %d (%v)", v, err)
	}
	if v, err := in.ReadBool(); err != nil || !v {
		t.Errorf("ReadBool: expected true, got %v (%v)", v, err)
	}
	if v, err := in.ReadBool(); err != nil || v {
		t.Errorf("ReadBool: expected false, got %v (%v)", v, err)
	}
	if v, err := in.ReadUint16(); err != nil || v != math.MaxUint16 {
		t.Errorf("ReadUint16: expected %d, got %d (%v)", math.MaxUint16, v, err)
	}
	if v, err := in.ReadInt32(); err != nil || v != math.MinInt32 {
		t.Errorf("ReadInt32: expected %d, got %d (%v)", math.MinInt32, v, err)
	}
	if v, err := in.ReadInt64(); err != nil || v != math.MaxInt64 {
		t.Errorf("ReadInt64: expected %d, got %d (%v)", int64(math.MaxInt64), v, err)
	}
	if v, err := in.ReadFloat32(); err != nil || v != 0.75 {
		t.Errorf("ReadFloat32: expected 0.75, got %v (%v)", v, err)
	}
	if v, err := in.ReadBytes(); err != nil || string(v) != "payload" {
		t.Errorf("ReadBytes: expected payload, got %q (%v)", v, err)
	}
	if v, err := in.ReadBytes(); err != nil || v != nil {
		t.Errorf("ReadBytes: expected nil, got %v (%v)", v, err)
	}
	if v, err := in.ReadBytes(); err != nil || v == nil || len(v) != 0 {
		t.Errorf("ReadBytes: expected empty non nil slice, got %v (%v)", v, err)
	}

	if in.Remaining() != 0 {
		t.Errorf("Expected all data to be read, %d bytes remaining", in.Remaining())
	}
}

// TestNullableStrings tests the marker based string encoding
func TestNullableStrings(t *testing.T) {
	testCases := []struct {
		name   string
		value  *string
		marker byte
	}{
		{name: "Null", value: nil, marker: markerNullString},
		{name: "Empty", value: StringPtr(""), marker: markerString},
		{name: "Short", value: StringPtr("/orders/eu"), marker: markerString},
		{name: "Unicode", value: StringPtr("größe/区域"), marker: markerString},
		{name: "Longest short", value: StringPtr(strings.Repeat("a", maxShortString)), marker: markerString},
		{name: "Huge", value: StringPtr(strings.Repeat("b", maxShortString+1)), marker: markerHugeString},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := NewDataOutput(16)
			out.WriteString(tc.value)

			data := out.Bytes()
			if data[0] != tc.marker {
				t.Errorf("Marker mismatch: expected %d, got %d", tc.marker, data[0])
			}

			result, err := NewDataInput(data).ReadString()
			if err != nil {
				t.Fatalf("Failed to read string: %v", err)
			}
			if !reflect.DeepEqual(tc.value, result) {
				t.Errorf("String doesn't match after round trip: expected %v, got %v", tc.value, result)
			}
		})
	}
}

// TestStringLists tests nil, empty and filled string lists
func TestStringLists(t *testing.T) {
	for _, list := range [][]string{nil, {}, {"a"}, {"audit", "", "metrics"}} {
		out := NewDataOutput(16)
		out.WriteStrings(list)

		result, err := NewDataInput(out.Bytes()).ReadStrings()
		if err != nil {
			t.Fatalf("Failed to read list %v: %v", list, err)
		}
		if !reflect.DeepEqual(list, result) {
			t.Errorf("List doesn't match after round trip: expected %#v, got %#v", list, result)
		}
	}
}

// TestMalformedData tests that truncated and inconsistent input fails with ErrMalformed
func TestMalformedData(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		read func(in *DataInput) error
	}{
		{
			name: "Empty int32",
			data: []byte{},
			read: func(in *DataInput) error { _, err := in.ReadInt32(); return err },
		},
		{
			name: "Short int64",
			data: []byte{0, 0, 0, 1},
			read: func(in *DataInput) error { _, err := in.ReadInt64(); return err },
		},
		{
			name: "Invalid bool",
			data: []byte{2},
			read: func(in *DataInput) error { _, err := in.ReadBool(); return err },
		},
		{
			name: "Unknown string marker",
			data: []byte{1, 0, 0},
			read: func(in *DataInput) error { _, err := in.ReadString(); return err },
		},
		{
			name: "String without length",
			data: []byte{markerString, 0},
			read: func(in *DataInput) error { _, err := in.ReadString(); return err },
		},
		{
			name: "String longer than data",
			data: []byte{markerString, 0, 5, 'a', 'b', 'c'},
			read: func(in *DataInput) error { _, err := in.ReadString(); return err },
		},
		{
			name: "Huge string with negative length",
			data: []byte{markerHugeString, 0xff, 0xff, 0xff, 0xfe},
			read: func(in *DataInput) error { _, err := in.ReadString(); return err },
		},
		{
			name: "Bytes longer than data",
			data: []byte{0, 0, 0, 10, 1},
			read: func(in *DataInput) error { _, err := in.ReadBytes(); return err },
		},
		{
			name: "Nil string in list",
			data: []byte{0, 0, 0, 1, markerNullString},
			read: func(in *DataInput) error { _, err := in.ReadStrings(); return err },
		},
		{
			name: "List count larger than data",
			data: []byte{0x7f, 0xff, 0xff, 0xff},
			read: func(in *DataInput) error { _, err := in.ReadStrings(); return err },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(NewDataInput(tc.data))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Expected ErrMalformed, got %v", err)
			}
		})
	}
}

// TestOutputReset tests that Reset discards written data
func TestOutputReset(t *testing.T) {
	out := NewDataOutput(4)
	out.WriteInt64(42)
	if out.Len() != 8 {
		t.Fatalf("Expected length 8, got %d", out.Len())
	}
	out.Reset()
	if out.Len() != 0 {
		t.Errorf("Expected length 0 after reset, got %d", out.Len())
	}
}

// BenchmarkWriteString benchmarks the nullable string encoding
func BenchmarkWriteString(b *testing.B) {
	values := map[string]*string{
		"Null":  nil,
		"Short": StringPtr("/orders/eu/pending"),
		"Large": StringPtr(strings.Repeat("x", 1024)),
	}

	for name, value := range values {
		b.Run(name, func(b *testing.B) {
			out := NewDataOutput(2048)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out.Reset()
				out.WriteString(value)
			}
		})
	}
}
