// Package config loads the TOML deployment configuration for a bridge
// instance: the home chain id, the admin key, the seed token table, and the
// per-route limiter caps installed at startup.
package config

import (
	"encoding/hex"
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"nhbridge/crypto"
)

// AdminKeystorePassphraseEnvVar names the environment variable Load reads the
// admin keystore's decryption/encryption passphrase from, following the same
// os.Getenv-plus-TrimSpace convention the bridge's companion services use for
// OTEL_EXPORTER_OTLP_* and NHB_ENV. The passphrase is never stored in the
// TOML file alongside the keystore path: doing so would defeat the point of
// encrypting the key in the first place.
const AdminKeystorePassphraseEnvVar = "NHBRIDGE_ADMIN_KEYSTORE_PASSPHRASE"

// TokenConfig seeds one entry of the treasury's token table.
type TokenConfig struct {
	TypeName            string `toml:"TypeName"`
	TokenID             uint8  `toml:"TokenID"`
	Decimals            uint8  `toml:"Decimals"`
	NotionalValueUSD8dp uint64 `toml:"NotionalValueUSD8dp"`
	Native              bool   `toml:"Native"`
}

// RouteLimitConfig seeds one per-route cap installed into the limiter.
type RouteLimitConfig struct {
	SourceChain      uint8  `toml:"SourceChain"`
	DestinationChain uint8  `toml:"DestinationChain"`
	LimitUSD8dp      uint64 `toml:"LimitUSD8dp"`
}

// Config is the top-level deployment configuration for one bridge instance.
//
// The admin key is sourced one of two ways. If AdminKeystorePath is set, the
// key lives in an encrypted go-ethereum v3 keystore file at that path,
// decrypted at load time using AdminKeystorePassphraseEnvVar; AdminKey is
// never read from or written to this file in that mode. Otherwise the key
// falls back to the legacy plaintext-hex AdminKey field, generated and
// persisted on first load if absent.
type Config struct {
	ChainID             uint8              `toml:"ChainID"`
	AdminAddress        string             `toml:"AdminAddress"`
	AdminKey            string             `toml:"AdminKey"`
	AdminKeystorePath   string             `toml:"AdminKeystorePath"`
	CommitteeRosterPath string             `toml:"CommitteeRosterPath"`
	MinParticipationBps uint32             `toml:"MinParticipationBps"`
	Tokens              []TokenConfig      `toml:"Tokens"`
	RouteLimits         []RouteLimitConfig `toml:"RouteLimits"`
	OTelEndpoint        string             `toml:"OTelEndpoint"`
	Environment         string             `toml:"Environment"`
}

// Load loads the configuration from path, creating a default file (with a
// freshly generated admin key) if none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if cfg.AdminKeystorePath != "" {
		if err := loadAdminKeyFromKeystore(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if cfg.AdminKey == "" {
		key, err := crypto.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		cfg.AdminKey = hex.EncodeToString(key.Bytes())
		cfg.AdminAddress = key.PubKey().Address().String()

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, os.ModePerm)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// adminKeystorePassphrase reads AdminKeystorePassphraseEnvVar, failing closed
// if it is unset or blank rather than silently falling back to an empty
// passphrase.
func adminKeystorePassphrase() (string, error) {
	passphrase := strings.TrimSpace(os.Getenv(AdminKeystorePassphraseEnvVar))
	if passphrase == "" {
		return "", errors.New("config: " + AdminKeystorePassphraseEnvVar + " must be set to use AdminKeystorePath")
	}
	return passphrase, nil
}

// loadAdminKeyFromKeystore decrypts cfg.AdminKeystorePath, creating a fresh
// key and encrypting it to that path first if it does not yet exist, then
// populates cfg.AdminKey/AdminAddress in memory only. The plaintext key is
// never written back into the TOML file in keystore mode.
func loadAdminKeyFromKeystore(cfg *Config) error {
	passphrase, err := adminKeystorePassphrase()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.AdminKeystorePath); os.IsNotExist(err) {
		key, err := crypto.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if err := crypto.SaveToKeystore(cfg.AdminKeystorePath, key, passphrase); err != nil {
			return err
		}
	}

	key, err := crypto.LoadFromKeystore(cfg.AdminKeystorePath, passphrase)
	if err != nil {
		return err
	}
	cfg.AdminKey = hex.EncodeToString(key.Bytes())
	cfg.AdminAddress = key.PubKey().Address().String()
	return nil
}

// createDefault creates and saves a default configuration file for
// chain_id=2 (starcoin_devnet), no seed tokens, and no route limits — a
// deployer is expected to fill those in before going live.
func createDefault(path string) (*Config, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ChainID:             2, // chainregistry.StarcoinDevnet
		AdminAddress:        key.PubKey().Address().String(),
		AdminKey:            hex.EncodeToString(key.Bytes()),
		MinParticipationBps: 6700,
		Tokens:              []TokenConfig{},
		RouteLimits:         []RouteLimitConfig{},
		Environment:         "development",
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
