// Package bridgecrypto implements the secp256k1 recovery, pubkey
// decompression, and EVM-address derivation the committee relies on to
// verify signed bridge messages (spec C3).
package bridgecrypto

import (
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// HashAlgo selects the hash function applied to message_bytes before ECDSA
// recovery. Only keccak256 is defined in this revision of the protocol.
type HashAlgo uint8

// HashAlgoKeccak256 is the only hash algorithm tag accepted by Ecrecover.
const HashAlgoKeccak256 HashAlgo = 0

// DomainSeparator is prepended to the serialized message before hashing, per
// spec §4.3/§6.1.
const DomainSeparator = "STARCOIN_BRIDGE_MESSAGE"

const (
	compressedPubkeyLen = 33
	uncompressedPubkeyLen = 65
	signatureLen          = 65
	evmAddressLen         = 20
)

// PrefixedPreimage returns DomainSeparator || serializedMessage, the exact
// byte sequence fed to keccak256 before ECDSA recovery.
func PrefixedPreimage(serializedMessage []byte) []byte {
	out := make([]byte, 0, len(DomainSeparator)+len(serializedMessage))
	out = append(out, []byte(DomainSeparator)...)
	out = append(out, serializedMessage...)
	return out
}

// DecompressPubkey expands a 33-byte compressed secp256k1 public key into its
// 65-byte uncompressed form (0x04 || X || Y).
func DecompressPubkey(compressed []byte) ([]byte, error) {
	if len(compressed) != compressedPubkeyLen {
		return nil, fmt.Errorf("bridgecrypto: compressed pubkey must be %d bytes, got %d", compressedPubkeyLen, len(compressed))
	}
	pub, err := ethcrypto.DecompressPubkey(compressed)
	if err != nil {
		return nil, fmt.Errorf("bridgecrypto: decompress pubkey: %w", err)
	}
	return ethcrypto.FromECDSAPub(pub), nil
}

// Ecrecover recovers the compressed 33-byte public key of the signer of a
// 65-byte RSV signature over messageBytes, hashed per algo.
func Ecrecover(sig []byte, messageBytes []byte, algo HashAlgo) ([]byte, error) {
	if len(sig) != signatureLen {
		return nil, fmt.Errorf("bridgecrypto: signature must be %d bytes, got %d", signatureLen, len(sig))
	}
	var hash []byte
	switch algo {
	case HashAlgoKeccak256:
		hash = ethcrypto.Keccak256(messageBytes)
	default:
		return nil, fmt.Errorf("bridgecrypto: unsupported hash algo tag %d", algo)
	}
	pub, err := ethcrypto.SigToPub(hash, sig)
	if err != nil {
		return nil, fmt.Errorf("bridgecrypto: recover signer: %w", err)
	}
	return ethcrypto.CompressPubkey(pub), nil
}

// EVMAddress derives the 20-byte Ethereum address for a compressed 33-byte
// public key: decompress, drop the leading 0x04, keccak-256 the remaining
// 64-byte tail, and take the low 20 bytes (spec §4.3/§9 — the one of the two
// incompatible source definitions that the spec says is correct).
func EVMAddress(compressed []byte) ([evmAddressLen]byte, error) {
	var addr [evmAddressLen]byte
	uncompressed, err := DecompressPubkey(compressed)
	if err != nil {
		return addr, err
	}
	if len(uncompressed) != uncompressedPubkeyLen || uncompressed[0] != 0x04 {
		return addr, fmt.Errorf("bridgecrypto: unexpected uncompressed pubkey encoding")
	}
	tail := uncompressed[1:]
	digest := ethcrypto.Keccak256(tail)
	copy(addr[:], digest[len(digest)-evmAddressLen:])
	return addr, nil
}
