package admin

import (
	"errors"
	"testing"

	"github.com/dgrid/dgrid/rpc/serializer"
)

// TestDecodeUnknownMessageType tests that unregistered message types are rejected
func TestDecodeUnknownMessageType(t *testing.T) {
	out := serializer.NewDataOutput(8)
	out.WriteUint16(4711)
	out.WriteInt32(1)

	if _, err := DecodeMessage(out.Bytes()); !errors.Is(err, serializer.ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}

// TestDecodeKindMismatch tests that requests and responses are not mixed up
func TestDecodeKindMismatch(t *testing.T) {
	reqData, err := EncodeMessage(NewGetRegionRequest(testCache, "/orders"))
	if err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}
	if _, err := DecodeResponse(reqData); err == nil {
		t.Errorf("Expected decoding a request as response to fail")
	}
	if _, err := DecodeRequest(reqData); err != nil {
		t.Errorf("Expected request to decode, got %v", err)
	}

	respData, err := EncodeMessage(NewErrorResponse("server-1", 1, errors.New("boom")))
	if err != nil {
		t.Fatalf("Failed to encode response: %v", err)
	}
	if _, err := DecodeRequest(respData); err == nil {
		t.Errorf("Expected decoding a response as request to fail")
	}
}

// TestRegisterMessageTwice tests that a message type can only be registered once
func TestRegisterMessageTwice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on duplicate registration")
		}
	}()
	RegisterMessage(MsgTRegionRequest, func() AdminMessage { return &RegionRequest{} })
}

// TestNextMsgID tests that message ids are unique and increasing
func TestNextMsgID(t *testing.T) {
	first := NextMsgID()
	second := NextMsgID()
	if second <= first {
		t.Errorf("Expected increasing ids, got %d then %d", first, second)
	}
}

// TestTypeStrings tests the string representations of the wire enums
func TestTypeStrings(t *testing.T) {
	tests := []struct {
		got, expected string
	}{
		{MsgTRegionRequest.String(), "region request"},
		{MsgTRegionResponse.String(), "region response"},
		{MsgTError.String(), "error"},
		{MessageType(5).String(), "unknown (5)"},
		{ActionGetRegion.String(), "get-region"},
		{ActionCreateRootRegion.String(), "create-root-region"},
		{ActionCreateSubregion.String(), "create-subregion"},
		{ActionKind(999).String(), "unknown(999)"},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, tc.got)
		}
	}
}
