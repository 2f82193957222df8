package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
//
// WALLET_PASSPHRASE and WALLET_SALT_B64 default to constants shared by every
// installation: the envelope then only resists casual inspection of the slot
// file, not an attacker with the binary. Set WALLET_PASSPHRASE (or use
// PromptForPassphrase) for a per-user secret.
type Config struct {
	Port                  string `envconfig:"PORT" default:"8080"`
	LedgerURL             string `envconfig:"LEDGER_URL" default:"http://localhost:5000"`
	RequestTimeoutSeconds int    `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"10"`
	SecretSlotPath        string `envconfig:"SECRET_SLOT_PATH"`
	Passphrase            string `envconfig:"WALLET_PASSPHRASE" default:"purse-local-custody"`
	SaltB64               string `envconfig:"WALLET_SALT_B64" default:"cHVyc2UtZml4ZWQtc2FsdA=="`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns the local API port from configuration
func GetPort() string {
	return Get().Port
}

// GetLedgerURL returns the remote ledger base URL from configuration
func GetLedgerURL() string {
	return Get().LedgerURL
}

// GetRequestTimeout returns the outbound request timeout. It also bounds
// credential resolution: a decrypt that has not settled by then fails closed.
func GetRequestTimeout() time.Duration {
	return time.Duration(Get().RequestTimeoutSeconds) * time.Second
}

// GetSecretSlotPath returns the path of the persisted envelope slot,
// defaulting to <user config dir>/purse/secret.slot.
func GetSecretSlotPath() (string, error) {
	if p := Get().SecretSlotPath; p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "purse", "secret.slot"), nil
}

// GetSaltBytes returns the decoded KDF salt.
func GetSaltBytes() ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(Get().SaltB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode WALLET_SALT_B64: %w", err)
	}
	if len(salt) == 0 {
		return nil, errors.New("salt cannot be empty")
	}
	return salt, nil
}

// PromptForPassphrase prompts the user for the custody passphrase in the
// terminal. The passphrase is read without echoing and replaces the
// configured value for this process.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter a passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter wallet passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	Get().Passphrase = string(raw)
	clear(raw)
	return nil
}

// GetPassphraseBytes returns a copy of the configured passphrase.
// Caller must zero the returned slice after use.
func GetPassphraseBytes() ([]byte, error) {
	p := Get().Passphrase
	if p == "" {
		return nil, errors.New("passphrase not set")
	}
	return []byte(p), nil
}
