package admin

import (
	"errors"
	"fmt"

	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/dgrid/dgrid/rpc/serializer"
)

// RegionResponse is the answer to a RegionRequest. It describes the region that
// was found or created, or carries the error that prevented it.
type RegionResponse struct {
	Header

	action     ActionKind
	cacheID    int32
	path       *string
	attributes *region.Attributes
	err        *string
}

// NewRegionResponse performs the operation of req against the caches of ctx
// and returns the response for the member recipient. All failures are reported
// in the response, the function itself never fails.
func NewRegionResponse(ctx ResponseContext, recipient *string, req *RegionRequest) *RegionResponse {
	memberID := ctx.MemberID()
	resp := &RegionResponse{
		Header: Header{
			MsgID:  req.MsgID,
			Sender: &memberID,
		},
		action:  req.action,
		cacheID: req.cacheID,
	}

	to := "<unknown>"
	if recipient != nil {
		to = *recipient
	}
	Logger.Debugf("handling %s (%s) for %s", req, req.description, to)

	c, ok := ctx.Cache(req.cacheID)
	if !ok {
		resp.setError(fmt.Errorf("no cache with id %d", req.cacheID))
		return resp
	}

	if err := req.Validate(); err != nil {
		resp.setError(err)
		return resp
	}

	var (
		r   *cache.Region
		err error
	)
	switch req.action {
	case ActionGetRegion:
		var found bool
		r, found, err = c.GetRegion(*req.path)
		if err == nil && !found {
			Logger.Debugf("region %s not found in cache %d", *req.path, req.cacheID)
			return resp
		}
	case ActionCreateRootRegion:
		r, err = c.CreateRootRegion(*req.newRegionName, req.newRegionAttributes)
	case ActionCreateSubregion:
		r, err = c.CreateSubregion(*req.path, *req.newRegionName, req.newRegionAttributes)
	}

	if err != nil {
		Logger.Warningf("%s failed for %s: %v", req.action, to, err)
		resp.setError(err)
		return resp
	}

	path := r.FullPath()
	resp.path = &path
	resp.attributes = r.Attributes()
	return resp
}

func (r *RegionResponse) setError(err error) {
	msg := err.Error()
	r.err = &msg
}

// --------------------------------------------------------------------------
// Getters
// --------------------------------------------------------------------------

// Action returns the action of the request this response answers
func (r *RegionResponse) Action() ActionKind {
	return r.action
}

func (r *RegionResponse) CacheID() int32 {
	return r.cacheID
}

// Found returns whether the response describes a region
func (r *RegionResponse) Found() bool {
	return r.path != nil
}

// Path returns the full path of the region found or created
func (r *RegionResponse) Path() (string, bool) {
	if r.path == nil {
		return "", false
	}
	return *r.path, true
}

// Attributes returns the configuration of the region found or created (nil if absent)
func (r *RegionResponse) Attributes() *region.Attributes {
	return r.attributes
}

// --------------------------------------------------------------------------
// Interface Methods (docu see admin.AdminResponse)
// --------------------------------------------------------------------------

func (r *RegionResponse) MessageType() MessageType {
	return MsgTRegionResponse
}

func (r *RegionResponse) GetHeader() *Header {
	return &r.Header
}

func (r *RegionResponse) Err() error {
	if r.err == nil {
		return nil
	}
	return errors.New(*r.err)
}

func (r *RegionResponse) ToData(out *serializer.DataOutput) error {
	if err := r.Header.ToData(out); err != nil {
		return err
	}
	out.WriteInt32(int32(r.action))
	out.WriteInt32(r.cacheID)
	out.WriteString(r.path)
	if err := serializer.DefaultRegistry.WriteObject(out, r.attributes); err != nil {
		return err
	}
	out.WriteString(r.err)
	return nil
}

func (r *RegionResponse) FromData(in *serializer.DataInput) error {
	if err := r.Header.FromData(in); err != nil {
		return err
	}

	action, err := in.ReadInt32()
	if err != nil {
		return err
	}
	r.action = ActionKind(action)

	if r.cacheID, err = in.ReadInt32(); err != nil {
		return err
	}
	if r.path, err = in.ReadString(); err != nil {
		return err
	}

	obj, err := serializer.DefaultRegistry.ReadObject(in)
	if err != nil {
		return err
	}
	if obj != nil {
		attrs, ok := obj.(*region.Attributes)
		if !ok {
			return fmt.Errorf("%w: expected region attributes, got type tag %d", serializer.ErrMalformed, obj.TypeTag())
		}
		r.attributes = attrs
	}

	r.err, err = in.ReadString()
	return err
}
