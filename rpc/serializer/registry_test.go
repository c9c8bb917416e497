package serializer

import (
	"errors"
	"reflect"
	"testing"
)

const testTag uint16 = 60001

// point is a small DataSerializable used to test the registry
type point struct {
	X, Y  int32
	Label *string
}

func (p *point) TypeTag() uint16 { return testTag }

func (p *point) ToData(out *DataOutput) error {
	out.WriteInt32(p.X)
	out.WriteInt32(p.Y)
	out.WriteString(p.Label)
	return nil
}

func (p *point) FromData(in *DataInput) (err error) {
	if p.X, err = in.ReadInt32(); err != nil {
		return err
	}
	if p.Y, err = in.ReadInt32(); err != nil {
		return err
	}
	p.Label, err = in.ReadString()
	return err
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(testTag, func() DataSerializable { return &point{} })
	return r
}

// TestRegistryRoundTrip tests writing and reading registered objects and nil
func TestRegistryRoundTrip(t *testing.T) {
	registry := newTestRegistry()
	var typedNil *point

	testCases := []struct {
		name     string
		obj      DataSerializable
		expected DataSerializable
	}{
		{name: "Object", obj: &point{X: 1, Y: -2, Label: StringPtr("p")}, expected: &point{X: 1, Y: -2, Label: StringPtr("p")}},
		{name: "Object with nil field", obj: &point{X: 3}, expected: &point{X: 3}},
		{name: "Nil", obj: nil, expected: nil},
		{name: "Typed nil", obj: typedNil, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := NewDataOutput(16)
			if err := registry.WriteObject(out, tc.obj); err != nil {
				t.Fatalf("Failed to write object: %v", err)
			}

			in := NewDataInput(out.Bytes())
			result, err := registry.ReadObject(in)
			if err != nil {
				t.Fatalf("Failed to read object: %v", err)
			}
			if !reflect.DeepEqual(tc.expected, result) {
				t.Errorf("Object doesn't match after round trip:\nExpected: %+v\nResult: %+v", tc.expected, result)
			}
			if in.Remaining() != 0 {
				t.Errorf("Expected all data to be read, %d bytes remaining", in.Remaining())
			}
		})
	}
}

// TestRegistryUnknownTag tests that unregistered tags fail on both sides
func TestRegistryUnknownTag(t *testing.T) {
	registry := newTestRegistry()

	// reading
	out := NewDataOutput(16)
	out.WriteInt8(markerTaggedObject)
	out.WriteUint16(testTag + 1)
	if _, err := registry.ReadObject(NewDataInput(out.Bytes())); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType when reading, got %v", err)
	}

	// writing
	if err := NewRegistry().WriteObject(NewDataOutput(16), &point{}); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType when writing, got %v", err)
	}
}

// TestRegistryMalformed tests invalid markers and truncated payloads
func TestRegistryMalformed(t *testing.T) {
	registry := newTestRegistry()

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: []byte{}},
		{name: "Invalid marker", data: []byte{7}},
		{name: "Missing tag", data: []byte{byte(markerTaggedObject), 0xea}},
		{name: "Truncated payload", data: []byte{byte(markerTaggedObject), 0xea, 0x61, 0, 0, 0, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := registry.ReadObject(NewDataInput(tc.data)); !errors.Is(err, ErrMalformed) {
				t.Errorf("Expected ErrMalformed, got %v", err)
			}
		})
	}
}

// TestRegistryDuplicate tests that registering a tag twice panics
func TestRegistryDuplicate(t *testing.T) {
	registry := newTestRegistry()

	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on duplicate registration")
		}
	}()
	registry.Register(testTag, func() DataSerializable { return &point{} })
}
