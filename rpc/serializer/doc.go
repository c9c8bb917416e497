// Package serializer implements the binary data format of all admin messages.
//
// Values are written big endian. Strings are nullable, so that an absent string
// and the empty string stay distinct:
//
//	null string   | 69 |
//	short string  | 87 | length uint16 | UTF-8 bytes |
//	huge string   | 89 | length int32  | UTF-8 bytes |
//
// Values whose concrete type is only known at runtime (polymorphic objects) are
// written by a Registry with a one byte marker and a type tag:
//
//	null object   | -1 |
//	tagged object | 45 | tag uint16 | payload written by ToData |
//
// Key Components:
//
//   - DataOutput: Growable output buffer with typed writers.
//
//   - DataInput: Reader for data written by a DataOutput. Every truncated or
//     inconsistent input fails with an error wrapping ErrMalformed.
//
//   - DataSerializable: Interface of all types with a registered type tag.
//
//   - Registry: Maps type tags to factories. Reading an unregistered tag fails
//     with ErrUnknownType. Types register themselves in DefaultRegistry.
//
// Thread Safety:
//
//	DataOutput and DataInput must not be shared between goroutines. The Registry
//	is safe for concurrent use.
package serializer
