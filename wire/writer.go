package wire

// Encoding is always a simple forward append — the back-popping convention
// only governs how the decoder reads a payload, not how a constructor builds
// one (see the wire format in spec §6.1).

// PutU8 appends a single byte.
func PutU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// PutBytes appends raw bytes verbatim.
func PutBytes(dst []byte, v []byte) []byte {
	return append(dst, v...)
}

// PutULEBLen appends n as a ULEB128-encoded length.
func PutULEBLen(dst []byte, n int) []byte {
	v := uint64(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		dst = append(dst, b)
		break
	}
	return dst
}

// PutVecU8 appends a ULEB128-length-prefixed byte vector.
func PutVecU8(dst []byte, v []byte) []byte {
	dst = PutULEBLen(dst, len(v))
	return append(dst, v...)
}

// PutU64LE appends n as eight little-endian bytes.
func PutU64LE(dst []byte, n uint64) []byte {
	return append(dst,
		byte(n), byte(n>>8), byte(n>>16), byte(n>>24),
		byte(n>>32), byte(n>>40), byte(n>>48), byte(n>>56))
}

// PutVecU64 appends a ULEB128-length-prefixed vector of little-endian u64s.
func PutVecU64(dst []byte, v []uint64) []byte {
	dst = PutULEBLen(dst, len(v))
	for _, n := range v {
		dst = PutU64LE(dst, n)
	}
	return dst
}

// PutVecVecU8 appends a ULEB128-length-prefixed vector of byte vectors.
func PutVecVecU8(dst []byte, v [][]byte) []byte {
	dst = PutULEBLen(dst, len(v))
	for _, b := range v {
		dst = PutVecU8(dst, b)
	}
	return dst
}
