// Package frame implements the length-prefixed CRC-32 framing used between
// the drive client and the bridge server.
//
// Wire format per frame, all integers big-endian:
//
//	length:  4 bytes (payload length + 4 CRC bytes)
//	payload: length-4 bytes
//	crc:     4 bytes, CRC-32 (IEEE) over the payload
package frame

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

// MaxPayload bounds the payload size accepted on read. Oversized frames are
// drained from the stream and reported as ErrTooLarge so the connection
// stays usable.
const MaxPayload = 8192

const crcSize = 4

var (
	// ErrCRC marks a frame whose checksum did not match; the frame is
	// dropped but the stream remains aligned.
	ErrCRC = errors.New("frame: crc mismatch")
	// ErrTooLarge marks a frame exceeding MaxPayload.
	ErrTooLarge = errors.New("frame: payload too large")
	// ErrEmpty marks a zero-length frame.
	ErrEmpty = errors.New("frame: empty")
	// ErrShort marks a frame too small to carry a checksum.
	ErrShort = errors.New("frame: too short")
)

// Checksum computes CRC-32 (IEEE polynomial) over data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Append returns payload with its big-endian CRC-32 appended.
func Append(payload []byte) []byte {
	out := make([]byte, len(payload)+crcSize)
	copy(out, payload)
	binary.BigEndian.PutUint32(out[len(payload):], Checksum(payload))
	return out
}

// Verify splits a payload+CRC body and checks the checksum. The returned
// payload is a copy.
func Verify(body []byte) ([]byte, error) {
	if len(body) < crcSize {
		return nil, ErrShort
	}
	n := len(body) - crcSize
	payload := make([]byte, n)
	copy(payload, body[:n])
	if Checksum(payload) != binary.BigEndian.Uint32(body[n:]) {
		return nil, ErrCRC
	}
	return payload, nil
}

// Writer frames payloads onto an underlying stream.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WriteFrame sends one payload as a single write so frames are not
// interleaved by concurrent callers sharing the connection.
func (w *Writer) WriteFrame(payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrTooLarge
	}
	body := Append(payload)
	buf := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(body)))
	copy(buf[4:], body)
	_, err := w.w.Write(buf)
	return err
}

// Reader reads frames from an underlying stream.
type Reader struct {
	r io.Reader
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// ReadFrame returns the next payload. ErrEmpty, ErrTooLarge, ErrShort and
// ErrCRC leave the stream aligned on the next frame; any other error is a
// transport failure and the stream should be abandoned.
func (r *Reader) ReadFrame() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n == 0 {
		return nil, ErrEmpty
	}
	if n > MaxPayload+crcSize {
		if _, err := io.CopyN(io.Discard, r.r, int64(n)); err != nil {
			return nil, err
		}
		return nil, ErrTooLarge
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return nil, err
	}
	return Verify(body)
}
