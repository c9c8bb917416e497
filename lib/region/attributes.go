package region

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrid/dgrid/rpc/serializer"
)

// TagRegionAttributes is the type tag of the Attributes snapshot in serializer.DefaultRegistry
const TagRegionAttributes uint16 = 201

func init() {
	serializer.DefaultRegistry.Register(TagRegionAttributes, func() serializer.DataSerializable {
		return &Attributes{}
	})
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Listener is a callback attached to a live region configuration.
// Listeners never leave the process they were created in, a snapshot only
// keeps their names.
type Listener interface {
	// Name identifies the listener, e.g. its type name
	Name() string
}

// IAttributes is the read only view of a region configuration.
// It is implemented by the live Config and by the serializable Attributes snapshot.
type IAttributes interface {
	Scope() Scope
	DataPolicy() DataPolicy
	// KeyConstraint is the name of the type all keys must have ("" = no constraint)
	KeyConstraint() string
	// ValueConstraint is the name of the type all values must have ("" = no constraint)
	ValueConstraint() string
	InitialCapacity() int32
	LoadFactor() float32
	ConcurrencyLevel() int32
	StatisticsEnabled() bool
	// EntryTimeToLive is the time after which an entry expires (0 = never)
	EntryTimeToLive() time.Duration
	// EntryIdleTimeout is the time after which an unused entry expires (0 = never)
	EntryIdleTimeout() time.Duration
	// ListenerNames returns the names of all attached listeners
	ListenerNames() []string
}

// --------------------------------------------------------------------------
// Snapshot
// --------------------------------------------------------------------------

// Attributes is an immutable, serializable snapshot of a region configuration.
// Use Snapshot to create one from any IAttributes.
type Attributes struct {
	scope             Scope
	dataPolicy        DataPolicy
	keyConstraint     string
	valueConstraint   string
	initialCapacity   int32
	loadFactor        float32
	concurrencyLevel  int32
	statisticsEnabled bool
	entryTimeToLive   time.Duration
	entryIdleTimeout  time.Duration
	listenerNames     []string
}

// Snapshot copies the current state of attrs into a new Attributes value.
// The snapshot does not reference attrs, later changes to attrs are not visible.
// A nil attrs results in a nil snapshot.
func Snapshot(attrs IAttributes) *Attributes {
	if attrs == nil {
		return nil
	}
	if a, ok := attrs.(*Attributes); ok && a == nil {
		return nil
	}
	if c, ok := attrs.(*Config); ok && c == nil {
		return nil
	}

	var names []string
	if n := attrs.ListenerNames(); n != nil {
		names = make([]string, len(n))
		copy(names, n)
	}

	return &Attributes{
		scope:             attrs.Scope(),
		dataPolicy:        attrs.DataPolicy(),
		keyConstraint:     attrs.KeyConstraint(),
		valueConstraint:   attrs.ValueConstraint(),
		initialCapacity:   attrs.InitialCapacity(),
		loadFactor:        attrs.LoadFactor(),
		concurrencyLevel:  attrs.ConcurrencyLevel(),
		statisticsEnabled: attrs.StatisticsEnabled(),
		entryTimeToLive:   attrs.EntryTimeToLive(),
		entryIdleTimeout:  attrs.EntryIdleTimeout(),
		listenerNames:     names,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see region.IAttributes)
// --------------------------------------------------------------------------

func (a *Attributes) Scope() Scope                    { return a.scope }
func (a *Attributes) DataPolicy() DataPolicy          { return a.dataPolicy }
func (a *Attributes) KeyConstraint() string           { return a.keyConstraint }
func (a *Attributes) ValueConstraint() string         { return a.valueConstraint }
func (a *Attributes) InitialCapacity() int32          { return a.initialCapacity }
func (a *Attributes) LoadFactor() float32             { return a.loadFactor }
func (a *Attributes) ConcurrencyLevel() int32         { return a.concurrencyLevel }
func (a *Attributes) StatisticsEnabled() bool         { return a.statisticsEnabled }
func (a *Attributes) EntryTimeToLive() time.Duration  { return a.entryTimeToLive }
func (a *Attributes) EntryIdleTimeout() time.Duration { return a.entryIdleTimeout }

func (a *Attributes) ListenerNames() []string {
	if a.listenerNames == nil {
		return nil
	}
	names := make([]string, len(a.listenerNames))
	copy(names, a.listenerNames)
	return names
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.DataSerializable)
// --------------------------------------------------------------------------

func (a *Attributes) TypeTag() uint16 {
	return TagRegionAttributes
}

func (a *Attributes) ToData(out *serializer.DataOutput) error {
	out.WriteInt8(int8(a.scope))
	out.WriteInt8(int8(a.dataPolicy))
	out.WriteString(&a.keyConstraint)
	out.WriteString(&a.valueConstraint)
	out.WriteInt32(a.initialCapacity)
	out.WriteFloat32(a.loadFactor)
	out.WriteInt32(a.concurrencyLevel)
	out.WriteBool(a.statisticsEnabled)
	out.WriteInt64(int64(a.entryTimeToLive))
	out.WriteInt64(int64(a.entryIdleTimeout))
	out.WriteStrings(a.listenerNames)
	return nil
}

func (a *Attributes) FromData(in *serializer.DataInput) (err error) {
	var scope, dataPolicy int8
	if scope, err = in.ReadInt8(); err != nil {
		return err
	}
	if dataPolicy, err = in.ReadInt8(); err != nil {
		return err
	}
	keyConstraint, err := readRequiredString(in, "key constraint")
	if err != nil {
		return err
	}
	valueConstraint, err := readRequiredString(in, "value constraint")
	if err != nil {
		return err
	}
	if a.initialCapacity, err = in.ReadInt32(); err != nil {
		return err
	}
	if a.loadFactor, err = in.ReadFloat32(); err != nil {
		return err
	}
	if a.concurrencyLevel, err = in.ReadInt32(); err != nil {
		return err
	}
	if a.statisticsEnabled, err = in.ReadBool(); err != nil {
		return err
	}
	var ttl, idle int64
	if ttl, err = in.ReadInt64(); err != nil {
		return err
	}
	if idle, err = in.ReadInt64(); err != nil {
		return err
	}
	if a.listenerNames, err = in.ReadStrings(); err != nil {
		return err
	}

	a.scope = Scope(scope)
	a.dataPolicy = DataPolicy(dataPolicy)
	a.keyConstraint = keyConstraint
	a.valueConstraint = valueConstraint
	a.entryTimeToLive = time.Duration(ttl)
	a.entryIdleTimeout = time.Duration(idle)
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// String returns a compact, single line representation of the attributes
func (a *Attributes) String() string {
	if a == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("scope=%s dataPolicy=%s", a.scope, a.dataPolicy))
	if a.keyConstraint != "" {
		sb.WriteString(fmt.Sprintf(" keyConstraint=%s", a.keyConstraint))
	}
	if a.valueConstraint != "" {
		sb.WriteString(fmt.Sprintf(" valueConstraint=%s", a.valueConstraint))
	}
	sb.WriteString(fmt.Sprintf(" initialCapacity=%d loadFactor=%.2f concurrencyLevel=%d statistics=%t",
		a.initialCapacity, a.loadFactor, a.concurrencyLevel, a.statisticsEnabled))
	if a.entryTimeToLive > 0 {
		sb.WriteString(fmt.Sprintf(" ttl=%s", a.entryTimeToLive))
	}
	if a.entryIdleTimeout > 0 {
		sb.WriteString(fmt.Sprintf(" idle=%s", a.entryIdleTimeout))
	}
	if len(a.listenerNames) > 0 {
		sb.WriteString(fmt.Sprintf(" listeners=[%s]", strings.Join(a.listenerNames, ",")))
	}
	return sb.String()
}

// readRequiredString reads a string that must not be absent on the wire
func readRequiredString(in *serializer.DataInput, what string) (string, error) {
	s, err := in.ReadString()
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("%w: %s must not be null", serializer.ErrMalformed, what)
	}
	return *s, nil
}
