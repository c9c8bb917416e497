package admin

import (
	"errors"

	"github.com/dgrid/dgrid/rpc/serializer"
)

// ErrorResponse is sent when a request could not be decoded or handled at all
type ErrorResponse struct {
	Header
	err string
}

// NewErrorResponse creates an error response from the given member
func NewErrorResponse(memberID string, msgID int32, err error) *ErrorResponse {
	return &ErrorResponse{
		Header: Header{MsgID: msgID, Sender: &memberID},
		err:    err.Error(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see admin.AdminResponse)
// --------------------------------------------------------------------------

func (r *ErrorResponse) MessageType() MessageType {
	return MsgTError
}

func (r *ErrorResponse) GetHeader() *Header {
	return &r.Header
}

func (r *ErrorResponse) Err() error {
	return errors.New(r.err)
}

func (r *ErrorResponse) ToData(out *serializer.DataOutput) error {
	if err := r.Header.ToData(out); err != nil {
		return err
	}
	out.WriteString(&r.err)
	return nil
}

func (r *ErrorResponse) FromData(in *serializer.DataInput) error {
	if err := r.Header.FromData(in); err != nil {
		return err
	}
	s, err := in.ReadString()
	if err != nil {
		return err
	}
	if s != nil {
		r.err = *s
	}
	return nil
}
