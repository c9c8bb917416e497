package serializer

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// Object markers, a single byte in front of every polymorphic object
const (
	markerNullObject   int8 = -1
	markerTaggedObject int8 = 45
)

// Factory creates a new, empty value for a registered type tag
type Factory func() DataSerializable

// DefaultRegistry is the registry used by all messages of this module.
// Types register themselves in their package init functions
var DefaultRegistry = NewRegistry()

// Registry maps type tags to factories. It is used to write and read values
// whose concrete type is not known to the code doing the (de)serialization.
//
// Thread-safety: All methods are safe for concurrent use.
type Registry struct {
	factories *xsync.MapOf[uint16, Factory]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: xsync.NewMapOf[uint16, Factory](),
	}
}

// Register registers a factory for a type tag. Registering the same tag twice panics
func (r *Registry) Register(tag uint16, factory Factory) {
	if _, loaded := r.factories.LoadOrStore(tag, factory); loaded {
		panic(fmt.Sprintf("serializer: type tag %d already registered", tag))
	}
}

// IsRegistered returns whether a factory exists for the given tag
func (r *Registry) IsRegistered(tag uint16) bool {
	_, ok := r.factories.Load(tag)
	return ok
}

// WriteObject writes obj preceded by its type tag, or the null marker if obj is nil.
// The type of obj must be registered, otherwise the receiver could not read it back
func (r *Registry) WriteObject(out *DataOutput, obj DataSerializable) error {
	if isNil(obj) {
		out.WriteInt8(markerNullObject)
		return nil
	}
	tag := obj.TypeTag()
	if !r.IsRegistered(tag) {
		return fmt.Errorf("%w: cannot write unregistered type tag %d", ErrUnknownType, tag)
	}
	out.WriteInt8(markerTaggedObject)
	out.WriteUint16(tag)
	return obj.ToData(out)
}

// ReadObject reads a value written by WriteObject. A nil result means
// the null marker was read
func (r *Registry) ReadObject(in *DataInput) (DataSerializable, error) {
	marker, err := in.ReadInt8()
	if err != nil {
		return nil, err
	}
	switch marker {
	case markerNullObject:
		return nil, nil
	case markerTaggedObject:
	default:
		return nil, fmt.Errorf("%w: unexpected object marker %d", ErrMalformed, marker)
	}

	tag, err := in.ReadUint16()
	if err != nil {
		return nil, err
	}
	factory, ok := r.factories.Load(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, tag)
	}

	obj := factory()
	if err := obj.FromData(in); err != nil {
		return nil, fmt.Errorf("failed to read object with type tag %d: %w", tag, err)
	}
	return obj, nil
}
