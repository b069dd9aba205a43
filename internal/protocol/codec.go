package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

const headerLength = 4

// MaxFrameLength bounds a single payload. Anything larger is treated as a
// desynchronised stream rather than a real message.
const MaxFrameLength = 256 << 20

var (
	// ErrFrameTooLarge is returned when a length prefix exceeds MaxFrameLength.
	ErrFrameTooLarge = errors.New("frame exceeds maximum length")
	// ErrInvalidUTF8 is returned when a payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("payload is not valid utf-8")
)

// ServerError is a reply the server marked with "status": "err". It does not
// break the framing and the connection stays usable.
type ServerError struct {
	Reason string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("musing error: %s", e.Reason)
}

// IsTransport reports whether err leaves the stream in an unknown state.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var serverErr *ServerError
	return !errors.As(err, &serverErr)
}

// WriteFrame writes the length prefix and payload with a single Write so a
// frame is either fully handed to the stream or the stream is broken.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameLength {
		return fmt.Errorf("write frame: %w (%d bytes)", ErrFrameTooLarge, len(payload))
	}
	buf := make([]byte, headerLength+len(payload))
	binary.BigEndian.PutUint32(buf[:headerLength], uint32(len(payload)))
	copy(buf[headerLength:], payload)
	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("write frame: %w", io.ErrShortWrite)
	}
	return nil
}

// ReadFrame blocks until a whole frame is available and returns its payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [headerLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > MaxFrameLength {
		return nil, fmt.Errorf("read frame: %w (%d bytes)", ErrFrameTooLarge, length)
	}
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("read frame payload: %w", err)
		}
	}
	return payload, nil
}

// WriteJSON encodes v as compact JSON and writes it as one frame.
func WriteJSON(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return WriteFrame(w, payload)
}

// ReadJSON reads one frame and parses it as JSON. A top-level object whose
// status is "err" comes back as a *ServerError; every other error means the
// stream can no longer be trusted.
func ReadJSON(r io.Reader) (json.RawMessage, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(payload) {
		return nil, ErrInvalidUTF8
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("decode message: invalid json (%d bytes)", len(payload))
	}
	if reason, failed := statusError(payload); failed {
		return nil, &ServerError{Reason: reason}
	}
	return json.RawMessage(payload), nil
}

// ReadVersion reads the handshake frame the server sends on connect.
func ReadVersion(r io.Reader) (string, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		return "", fmt.Errorf("handshake: %w", err)
	}
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("handshake: %w", ErrInvalidUTF8)
	}
	return string(payload), nil
}

// WriteVersion writes a handshake frame. Only servers (and fakes of them) send
// one.
func WriteVersion(w io.Writer, version string) error {
	return WriteFrame(w, []byte(version))
}

func statusError(payload []byte) (string, bool) {
	var envelope struct {
		Status *string          `json:"status"`
		Reason *json.RawMessage `json:"reason"`
	}
	// Arrays and scalars are valid replies; they just cannot carry a status.
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", false
	}
	if envelope.Status == nil || *envelope.Status != "err" {
		return "", false
	}
	if envelope.Reason == nil {
		return "unknown error", true
	}
	var reason string
	if err := json.Unmarshal(*envelope.Reason, &reason); err == nil {
		return reason, true
	}
	return string(*envelope.Reason), true
}
