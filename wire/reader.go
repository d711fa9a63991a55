// Package wire implements the little-endian, length-prefixed BCS-flavored
// decoder the bridge message codec is built on (spec C2). The wire format is
// consumed from the back: each peel removes bytes from the tail of the
// buffer. Reader reverses the buffer once at construction so every peel then
// reads forward, which keeps the implementation straightforward while
// preserving the original pop-last semantics for the trailing-byte check.
package wire

import "nhbridge/bridgeerr"

// Reader peels BCS-encoded values off a buffer that mirrors the original
// stack-like (pop-last) wire convention: the buffer is reversed once at
// construction, and every peel removes bytes from the END of that reversed
// buffer — which is exactly the bytes at the FRONT of the original payload,
// in their original forward order. Construct with NewReader.
type Reader struct {
	buf []byte // reverse(payload), shrunk from the end as fields are peeled
}

// NewReader reverses payload once so every peel can pop from the end of buf
// while yielding bytes in the original payload's forward order.
func NewReader(payload []byte) *Reader {
	reversed := make([]byte, len(payload))
	for i, b := range payload {
		reversed[len(payload)-1-i] = b
	}
	return &Reader{buf: reversed}
}

// Empty reports whether every byte of the buffer has been consumed.
func (r *Reader) Empty() bool {
	return len(r.buf) == 0
}

// AssertEmpty returns ErrTrailingBytes if the buffer is not fully consumed.
// Callers must invoke this after decoding every field of a message.
func (r *Reader) AssertEmpty() error {
	if !r.Empty() {
		return bridgeerr.ErrTrailingBytes
	}
	return nil
}

// take pops the next n bytes in the original payload's forward order off the
// end of the internally-reversed buffer.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || len(r.buf) < n {
		return nil, bridgeerr.ErrOutOfRange
	}
	tail := r.buf[len(r.buf)-n:]
	out := make([]byte, n)
	for i, b := range tail {
		out[n-1-i] = b
	}
	r.buf = r.buf[:len(r.buf)-n]
	return out, nil
}

// leU64 decodes n little-endian bytes (n <= 8) into a uint64.
func leU64(b []byte) uint64 {
	var v uint64
	for i, x := range b {
		v |= uint64(x) << (8 * uint(i))
	}
	return v
}

// PeelBytes reads exactly n raw bytes, in the original payload's forward
// order. Used for fixed-width fields whose length is carried by a separate
// u8 field rather than a ULEB128 prefix (e.g. the token-transfer payload's
// sender/target addresses).
func (r *Reader) PeelBytes(n int) ([]byte, error) {
	return r.take(n)
}

// PeelU8 reads one byte.
func (r *Reader) PeelU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// PeelU16 reads two little-endian bytes.
func (r *Reader) PeelU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(leU64(b)), nil
}

// PeelU64 reads eight little-endian bytes.
func (r *Reader) PeelU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return leU64(b), nil
}

// PeelU128 reads sixteen little-endian bytes into a big.Int-free 128-bit pair
// (hi, lo), each little-endian halves of the original value.
func (r *Reader) PeelU128() (hi uint64, lo uint64, err error) {
	b, err := r.take(16)
	if err != nil {
		return 0, 0, err
	}
	lo = leU64(b[:8])
	hi = leU64(b[8:])
	return hi, lo, nil
}

// PeelU256 reads thirty-two little-endian bytes as four uint64 limbs, least
// significant first.
func (r *Reader) PeelU256() ([4]uint64, error) {
	var limbs [4]uint64
	b, err := r.take(32)
	if err != nil {
		return limbs, err
	}
	for i := 0; i < 4; i++ {
		limbs[i] = leU64(b[i*8 : i*8+8])
	}
	return limbs, nil
}

// PeelBool decodes a single byte: 0 -> false, 1 -> true, anything else fails
// ErrNotBool.
func (r *Reader) PeelBool() (bool, error) {
	b, err := r.PeelU8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, bridgeerr.ErrNotBool
	}
}

// PeelULEBLen decodes a ULEB128-encoded length. Lengths wider than 5 bytes
// fail ErrLenOutOfRange (the spec's BCS flavor never encodes a length that
// needs a 6th continuation byte).
func (r *Reader) PeelULEBLen() (int, error) {
	var result uint64
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := r.PeelU8()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return int(result), nil
		}
	}
	return 0, bridgeerr.ErrLenOutOfRange
}

// PeelVecU8 decodes a ULEB128-length-prefixed byte vector.
func (r *Reader) PeelVecU8() ([]byte, error) {
	n, err := r.PeelULEBLen()
	if err != nil {
		return nil, err
	}
	return r.take(n)
}

// PeelVecU64 decodes a ULEB128-length-prefixed vector of little-endian u64s.
func (r *Reader) PeelVecU64() ([]uint64, error) {
	n, err := r.PeelULEBLen()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		v, err := r.PeelU64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// PeelVecVecU8 decodes a ULEB128-length-prefixed vector of byte vectors.
func (r *Reader) PeelVecVecU8() ([][]byte, error) {
	n, err := r.PeelULEBLen()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		v, err := r.PeelVecU8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// IntoRemainderBytes reverses whatever remains in the buffer back into
// forward-reading order, so a caller that wants to inspect unconsumed bytes
// (rather than simply asserting emptiness) sees them in wire order.
func (r *Reader) IntoRemainderBytes() []byte {
	out := make([]byte, len(r.buf))
	for i, b := range r.buf {
		out[len(r.buf)-1-i] = b
	}
	return out
}
