package wire

import "nhbridge/bridgeerr"

// PeelU64BE reads eight big-endian bytes. This is used for the on-wire
// numeric fields inside bridge message payloads (seq_num, amount, new_limit,
// new_price), which are big-endian regardless of the codec's default
// little-endian BCS convention — the bit-exact contract with peer bridges.
func (r *Reader) PeelU64BE() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}

// PutU64BE appends n as eight big-endian bytes.
func PutU64BE(dst []byte, n uint64) []byte {
	return append(dst,
		byte(n>>56), byte(n>>48), byte(n>>40), byte(n>>32),
		byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// DecodeU64BE decodes exactly 8 big-endian bytes from b.
func DecodeU64BE(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, bridgeerr.ErrOutOfRange
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v, nil
}
