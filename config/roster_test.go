package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"nhbridge/crypto"
)

func TestLoadCommitteeRosterYAML(t *testing.T) {
	priv, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	compressed := ethcrypto.CompressPubkey(priv.PubKey().PublicKey)
	addr := priv.PubKey().Address().String()

	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	contents := "members:\n" +
		"  - address: \"" + addr + "\"\n" +
		"    compressed_pubkey: \"" + hex.EncodeToString(compressed) + "\"\n" +
		"    voting_power_bps: 5000\n" +
		"    http_url: \"https://validator.example.invalid\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	entries, powers, err := LoadCommitteeRosterYAML(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(entries) != 1 || len(powers) != 1 {
		t.Fatalf("expected one roster entry, got entries=%d powers=%d", len(entries), len(powers))
	}
	if powers[0].VotingPowerBps != 5000 {
		t.Fatalf("unexpected voting power: %d", powers[0].VotingPowerBps)
	}
	if powers[0].Address.String() != addr {
		t.Fatalf("expected decoded address %s, got %s", addr, powers[0].Address.String())
	}

	pubkey, err := DecodeRosterPubkey(entries[0])
	if err != nil {
		t.Fatalf("decode pubkey: %v", err)
	}
	if len(pubkey) != 33 {
		t.Fatalf("expected 33-byte compressed pubkey, got %d", len(pubkey))
	}
}

func TestDecodeRosterPubkeyRejectsWrongLength(t *testing.T) {
	entry := RosterEntry{Address: "nhb1stub", CompressedPubkey: "deadbeef"}
	if _, err := DecodeRosterPubkey(entry); err == nil {
		t.Fatalf("expected error for a too-short pubkey")
	}
}
