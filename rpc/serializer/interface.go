package serializer

import "errors"

var (
	// ErrMalformed is returned when the input is truncated or a field marker
	// does not match the expected encoding
	ErrMalformed = errors.New("malformed data")
	// ErrUnknownType is returned when a polymorphic object carries a type tag
	// that has no registered factory
	ErrUnknownType = errors.New("unknown type tag")
)

// DataSerializable is the interface for all values that can be written to and
// read from the binary wire format.
type DataSerializable interface {
	// TypeTag returns the tag under which the type is registered in a Registry.
	// The tag is written in front of the payload by Registry.WriteObject
	TypeTag() uint16
	// ToData writes the fields of the value to out
	ToData(out *DataOutput) error
	// FromData reads the fields of the value from in, in the same order ToData wrote them
	FromData(in *DataInput) error
}
