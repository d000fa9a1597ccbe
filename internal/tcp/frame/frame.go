// Package frame implements the wire framing of the pointing protocol: every
// message is a 64-byte header holding the payload length as space-padded
// ASCII decimal, followed by that many payload bytes.
package frame

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
)

var (
	// ErrTooLarge means a payload, announced or outgoing, exceeds
	// defs.MaxPayloadSize.
	ErrTooLarge = errors.New("frame payload too large")

	// ErrMalformedHeader means the 64 header bytes do not parse as a
	// decimal length. The stream cannot be resynchronized after this.
	ErrMalformedHeader = errors.New("malformed frame header")
)

// Encode wraps payload in a frame ready to write to the wire.
func Encode(payload []byte) ([]byte, error) {
	if len(payload) > defs.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(payload))
	}
	head := strconv.Itoa(len(payload))
	buf := make([]byte, defs.HeaderSize+len(payload))
	copy(buf, head)
	for i := len(head); i < defs.HeaderSize; i++ {
		buf[i] = ' '
	}
	copy(buf[defs.HeaderSize:], payload)
	return buf, nil
}

// WriteMessage frames payload and writes it to w in one call.
func WriteMessage(w io.Writer, payload []byte) error {
	buf, err := Encode(payload)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// ReadPayload reads one frame from r and returns its payload. A clean close
// between frames surfaces as io.EOF; every other failure, including a close
// in the middle of a frame, means the stream is unusable.
func ReadPayload(r io.Reader) ([]byte, error) {
	head := make([]byte, defs.HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}

	length, err := parseHeader(head)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read %d payload bytes: %w", length, err)
	}
	return payload, nil
}

func parseHeader(head []byte) (int, error) {
	text := strings.TrimSpace(string(head))
	length, err := strconv.ParseUint(text, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedHeader, text)
	}
	if length > defs.MaxPayloadSize {
		return 0, fmt.Errorf("%w: announced %d bytes", ErrTooLarge, length)
	}
	return int(length), nil
}
