package admin

import (
	"errors"
	"fmt"

	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/dgrid/dgrid/rpc/serializer"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingField  = errors.New("missing field")
	ErrUnexpected    = errors.New("unexpected field")
)

// RegionRequest asks a cache hosting process to get an existing region, to
// create a new root region or to create a new subregion.
//
// Which fields are meaningful depends on the action:
//
//	action            | path        | newRegionName | newRegionAttributes
//	------------------+-------------+---------------+--------------------
//	GetRegion         | full path   | absent        | absent
//	CreateRootRegion  | absent      | name          | snapshot
//	CreateSubregion   | parent path | name          | snapshot
//
// A RegionRequest is created by one of the New*Request functions (sending side)
// or by DecodeMessage (receiving side) and is not modified afterwards.
type RegionRequest struct {
	Header

	action              ActionKind
	cacheID             int32
	path                *string
	newRegionName       *string
	newRegionAttributes *region.Attributes
	description         string
}

// --------------------------------------------------------------------------
// Request Factory Functions
// --------------------------------------------------------------------------

// NewGetRegionRequest creates a request for the region with the given full path
func NewGetRegionRequest(c cache.Handle, path string) *RegionRequest {
	return newRegionRequest(ActionGetRegion, c, &path, nil, nil)
}

// NewCreateRootRegionRequest creates a request for a new root region.
// The attributes are captured as a snapshot, later changes to attrs are not sent.
func NewCreateRootRegionRequest(c cache.Handle, name string, attrs region.IAttributes) *RegionRequest {
	return newRegionRequest(ActionCreateRootRegion, c, nil, &name, region.Snapshot(attrs))
}

// NewCreateSubregionRequest creates a request for a new region below parentPath.
// The attributes are captured as a snapshot, later changes to attrs are not sent.
func NewCreateSubregionRequest(c cache.Handle, parentPath, name string, attrs region.IAttributes) *RegionRequest {
	return newRegionRequest(ActionCreateSubregion, c, &parentPath, &name, region.Snapshot(attrs))
}

func newRegionRequest(action ActionKind, c cache.Handle, path, name *string, attrs *region.Attributes) *RegionRequest {
	return &RegionRequest{
		action:              action,
		cacheID:             c.ID(),
		path:                path,
		newRegionName:       name,
		newRegionAttributes: attrs,
		description:         Describe(action),
	}
}

// --------------------------------------------------------------------------
// Getters
// --------------------------------------------------------------------------

func (r *RegionRequest) Action() ActionKind {
	return r.action
}

// CacheID returns the id of the cache in the receiving process
func (r *RegionRequest) CacheID() int32 {
	return r.cacheID
}

// Path returns the full path (GetRegion) or the parent path (CreateSubregion)
func (r *RegionRequest) Path() (string, bool) {
	if r.path == nil {
		return "", false
	}
	return *r.path, true
}

// NewRegionName returns the name of the region to create
func (r *RegionRequest) NewRegionName() (string, bool) {
	if r.newRegionName == nil {
		return "", false
	}
	return *r.newRegionName, true
}

// NewRegionAttributes returns the configuration snapshot of the region to create.
// The result is nil if absent
func (r *RegionRequest) NewRegionAttributes() *region.Attributes {
	return r.newRegionAttributes
}

// Validate checks that exactly the fields required by the action are present.
// Requests of an unknown action fail with ErrUnknownAction.
func (r *RegionRequest) Validate() error {
	type field struct {
		name    string
		present bool
	}
	path := field{"path", r.path != nil}
	name := field{"new region name", r.newRegionName != nil}
	attrs := field{"new region attributes", r.newRegionAttributes != nil}

	var required, forbidden []field
	switch r.action {
	case ActionGetRegion:
		required, forbidden = []field{path}, []field{name, attrs}
	case ActionCreateRootRegion:
		required, forbidden = []field{name, attrs}, []field{path}
	case ActionCreateSubregion:
		required = []field{path, name, attrs}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, r.description)
	}

	for _, f := range required {
		if !f.present {
			return fmt.Errorf("%w: %s requires the %s", ErrMissingField, r.action, f.name)
		}
	}
	for _, f := range forbidden {
		if f.present {
			return fmt.Errorf("%w: %s must not have a %s", ErrUnexpected, r.action, f.name)
		}
	}
	return nil
}

// String returns a diagnostic representation of the request
func (r *RegionRequest) String() string {
	path := "<none>"
	if r.path != nil {
		path = *r.path
	}
	return fmt.Sprintf("RegionRequest from %s path=%s", r.senderString(), path)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see admin.AdminRequest)
// --------------------------------------------------------------------------

func (r *RegionRequest) MessageType() MessageType {
	return MsgTRegionRequest
}

func (r *RegionRequest) GetHeader() *Header {
	return &r.Header
}

func (r *RegionRequest) Description() string {
	return r.description
}

// CreateResponse builds the response in the receiving process. The process is
// expected to run a cache; a missing cache is reported by the response itself.
func (r *RegionRequest) CreateResponse(ctx ResponseContext) AdminResponse {
	return NewRegionResponse(ctx, r.Sender, r)
}

func (r *RegionRequest) ToData(out *serializer.DataOutput) error {
	if err := r.Header.ToData(out); err != nil {
		return err
	}
	out.WriteInt32(int32(r.action))
	out.WriteInt32(r.cacheID)
	out.WriteString(r.path)
	out.WriteString(r.newRegionName)
	return serializer.DefaultRegistry.WriteObject(out, r.newRegionAttributes)
}

func (r *RegionRequest) FromData(in *serializer.DataInput) error {
	if err := r.Header.FromData(in); err != nil {
		return err
	}

	action, err := in.ReadInt32()
	if err != nil {
		return err
	}
	r.action = ActionKind(action)
	r.description = Describe(r.action)

	if r.cacheID, err = in.ReadInt32(); err != nil {
		return err
	}
	if r.path, err = in.ReadString(); err != nil {
		return err
	}
	if r.newRegionName, err = in.ReadString(); err != nil {
		return err
	}

	obj, err := serializer.DefaultRegistry.ReadObject(in)
	if err != nil {
		return err
	}
	if obj == nil {
		r.newRegionAttributes = nil
		return nil
	}
	attrs, ok := obj.(*region.Attributes)
	if !ok {
		return fmt.Errorf("%w: expected region attributes, got type tag %d", serializer.ErrMalformed, obj.TypeTag())
	}
	r.newRegionAttributes = attrs
	return nil
}
