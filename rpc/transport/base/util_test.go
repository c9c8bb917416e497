package base

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// TestFrameRoundTrip tests writing and reading frames over an in-memory connection
func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		requestID uint64
		payload   []byte
		bufSize   int
	}{
		{"Empty", 1, []byte{}, 64},
		{"Nil", 1, nil, 64},
		{"Small", 2, []byte("region"), 64},
		{"LargerThanBuffer", 3, bytes.Repeat([]byte{0xab}, 1000), 64},
		{"NilBuffer", 4, []byte("payload"), 0},
		{"MaxRequestID", ^uint64(0), []byte{1, 2, 3}, 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer client.Close()
			defer server.Close()

			errCh := make(chan error, 1)
			go func() {
				errCh <- writeFrame(client, tc.requestID, tc.payload)
			}()

			var buf []byte
			if tc.bufSize > 0 {
				buf = make([]byte, tc.bufSize)
			}
			requestID, data, err := readFrame(server, buf)
			if err != nil {
				t.Fatalf("Failed to read frame: %v", err)
			}
			if err := <-errCh; err != nil {
				t.Fatalf("Failed to write frame: %v", err)
			}

			if requestID != tc.requestID {
				t.Errorf("Expected request id %d, got %d", tc.requestID, requestID)
			}
			if !bytes.Equal(data, tc.payload) {
				t.Errorf("Payload mismatch: expected %d bytes, got %d bytes", len(tc.payload), len(data))
			}
		})
	}
}

// TestReadFrameTruncated tests that a connection closed mid-frame is reported
func TestReadFrameTruncated(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		// header announcing 10 bytes, followed by only 3
		_, _ = client.Write([]byte{0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 10, 1, 2, 3})
		_ = client.Close()
	}()

	requestID, _, err := readFrame(server, make([]byte, 64))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
	if requestID != 9 {
		t.Errorf("Expected request id 9, got %d", requestID)
	}
}

// TestReadFrameEOF tests that a connection closed between frames returns io.EOF
func TestReadFrameEOF(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	_ = client.Close()

	if _, _, err := readFrame(server, nil); !errors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}

// TestEmptyFrameKeepsStream tests that an empty frame is header only and the next frame follows it
func TestEmptyFrameKeepsStream(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := writeFrame(client, 1, nil); err != nil {
			errCh <- err
			return
		}
		errCh <- writeFrame(client, 2, []byte("next"))
	}()

	requestID, data, err := readFrame(server, nil)
	if err != nil || requestID != 1 || len(data) != 0 {
		t.Fatalf("Expected empty frame 1, got id=%d data=%v err=%v", requestID, data, err)
	}
	requestID, data, err = readFrame(server, nil)
	if err != nil || requestID != 2 || string(data) != "next" {
		t.Fatalf("Expected frame 2 with payload next, got id=%d data=%q err=%v", requestID, data, err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Failed to write frames: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Writer still blocked after both frames were read")
	}
}
