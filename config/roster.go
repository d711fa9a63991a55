package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nhbridge/committee"
	"nhbridge/crypto"
)

// RosterEntry is one committee member seeded from an operator-maintained
// YAML roster, kept separate from the TOML deployment config since it is
// typically generated by a different process (an offline key ceremony)
// and churns independently of the rest of the deployment.
type RosterEntry struct {
	Address          string `yaml:"address"`
	CompressedPubkey string `yaml:"compressed_pubkey"`
	VotingPowerBps   uint32 `yaml:"voting_power_bps"`
	HTTPURL          string `yaml:"http_url"`
}

type rosterFile struct {
	Members []RosterEntry `yaml:"members"`
}

// LoadCommitteeRosterYAML reads a committee roster from path and returns it
// both as raw entries and as the ValidatorPower slice committee.New callers
// use to seed an ActiveValidatorSet.
func LoadCommitteeRosterYAML(path string) ([]RosterEntry, []committee.ValidatorPower, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var rf rosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, nil, err
	}

	powers := make([]committee.ValidatorPower, 0, len(rf.Members))
	for _, m := range rf.Members {
		addr, err := crypto.DecodeAddress(m.Address)
		if err != nil {
			return nil, nil, fmt.Errorf("roster entry %q: %w", m.Address, err)
		}
		powers = append(powers, committee.ValidatorPower{Address: addr, VotingPowerBps: m.VotingPowerBps})
	}
	return rf.Members, powers, nil
}

// DecodeRosterPubkey hex-decodes a roster entry's compressed_pubkey field,
// validating its length against the 33-byte compressed secp256k1 format.
func DecodeRosterPubkey(entry RosterEntry) ([]byte, error) {
	b, err := hex.DecodeString(entry.CompressedPubkey)
	if err != nil {
		return nil, fmt.Errorf("roster entry %q: %w", entry.Address, err)
	}
	if len(b) != 33 {
		return nil, fmt.Errorf("roster entry %q: compressed pubkey must be 33 bytes, got %d", entry.Address, len(b))
	}
	return b, nil
}
