package admin

import (
	"fmt"
	"sync/atomic"

	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/rpc/serializer"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("admin")

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType identifies the concrete type of an encoded admin message.
// The values are written to the wire and must never change.
type MessageType uint16

const (
	MsgTUnknown        MessageType = 0
	MsgTRegionRequest  MessageType = 1001 // Get or create a region
	MsgTRegionResponse MessageType = 1002 // Answer to a MsgTRegionRequest
	MsgTError          MessageType = 1003 // A request could not be handled at all
)

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTRegionRequest:
		return "region request"
	case MsgTRegionResponse:
		return "region response"
	case MsgTError:
		return "error"
	default:
		return fmt.Sprintf("unknown (%d)", uint16(t))
	}
}

// --------------------------------------------------------------------------
// Base Protocol
// --------------------------------------------------------------------------

// Header holds the fields every admin message starts with
type Header struct {
	// MsgID correlates a response with its request
	MsgID int32
	// Sender is the member id of the process that sent the message (nil = unknown)
	Sender *string
}

var lastMsgID atomic.Int32

// NextMsgID returns a new message id, unique within this process
func NextMsgID() int32 {
	return lastMsgID.Add(1)
}

// ToData writes the header fields
func (h *Header) ToData(out *serializer.DataOutput) error {
	out.WriteInt32(h.MsgID)
	out.WriteString(h.Sender)
	return nil
}

// FromData reads the header fields
func (h *Header) FromData(in *serializer.DataInput) (err error) {
	if h.MsgID, err = in.ReadInt32(); err != nil {
		return err
	}
	h.Sender, err = in.ReadString()
	return err
}

// senderString returns the sender for log and diagnostic output
func (h *Header) senderString() string {
	if h.Sender == nil {
		return "<unknown>"
	}
	return *h.Sender
}

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// AdminMessage is the interface all admin messages implement
type AdminMessage interface {
	// MessageType returns the wire type of the message
	MessageType() MessageType
	// GetHeader returns the base protocol header of the message
	GetHeader() *Header
	// ToData writes the header followed by the message fields
	ToData(out *serializer.DataOutput) error
	// FromData reads the fields in the order ToData wrote them
	FromData(in *serializer.DataInput) error
}

// AdminRequest is a message sent by an admin member to a cache hosting process
type AdminRequest interface {
	AdminMessage
	// Description returns a human readable label of the requested operation
	Description() string
	// CreateResponse performs the request in the receiving process and
	// returns the response that is sent back
	CreateResponse(ctx ResponseContext) AdminResponse
}

// AdminResponse is the answer to an AdminRequest
type AdminResponse interface {
	AdminMessage
	// Err returns the error reported by the remote process, or nil
	Err() error
}

// ResponseContext gives requests access to the receiving process
type ResponseContext interface {
	// Cache returns the running cache with the given id
	Cache(id int32) (c cache.ICache, ok bool)
	// MemberID returns the id of the receiving process, used as sender of responses
	MemberID() string
}

// --------------------------------------------------------------------------
// Message Registry
// --------------------------------------------------------------------------

var messageFactories = xsync.NewMapOf[MessageType, func() AdminMessage]()

// RegisterMessage registers a factory for a message type. Used in init functions
func RegisterMessage(t MessageType, factory func() AdminMessage) {
	if _, loaded := messageFactories.LoadOrStore(t, factory); loaded {
		panic(fmt.Sprintf("admin: message type %d already registered", t))
	}
}

func init() {
	RegisterMessage(MsgTRegionRequest, func() AdminMessage { return &RegionRequest{} })
	RegisterMessage(MsgTRegionResponse, func() AdminMessage { return &RegionResponse{} })
	RegisterMessage(MsgTError, func() AdminMessage { return &ErrorResponse{} })
}

// EncodeMessage writes the message type followed by the message
func EncodeMessage(msg AdminMessage) ([]byte, error) {
	out := serializer.NewDataOutput(128)
	out.WriteUint16(uint16(msg.MessageType()))
	if err := msg.ToData(out); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", msg.MessageType(), err)
	}
	return out.Bytes(), nil
}

// DecodeMessage reads a message written by EncodeMessage.
// Returns serializer.ErrUnknownType if the message type is not registered
func DecodeMessage(data []byte) (AdminMessage, error) {
	in := serializer.NewDataInput(data)
	t, err := in.ReadUint16()
	if err != nil {
		return nil, err
	}

	factory, ok := messageFactories.Load(MessageType(t))
	if !ok {
		return nil, fmt.Errorf("%w: message type %d", serializer.ErrUnknownType, t)
	}

	msg := factory()
	if err := msg.FromData(in); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", msg.MessageType(), err)
	}
	return msg, nil
}

// DecodeRequest decodes a message and checks that it is an AdminRequest
func DecodeRequest(data []byte) (AdminRequest, error) {
	msg, err := DecodeMessage(data)
	if err != nil {
		return nil, err
	}
	req, ok := msg.(AdminRequest)
	if !ok {
		return nil, fmt.Errorf("message of type %s is not a request", msg.MessageType())
	}
	return req, nil
}

// DecodeResponse decodes a message and checks that it is an AdminResponse
func DecodeResponse(data []byte) (AdminResponse, error) {
	msg, err := DecodeMessage(data)
	if err != nil {
		return nil, err
	}
	resp, ok := msg.(AdminResponse)
	if !ok {
		return nil, fmt.Errorf("message of type %s is not a response", msg.MessageType())
	}
	return resp, nil
}
