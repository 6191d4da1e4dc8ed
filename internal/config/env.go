package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the keystore password is prompted at runtime and kept in memory - use GetPasswordBytes()
type Config struct {
	Network        string        `envconfig:"NETWORK"`
	Mnemonic       string        `envconfig:"MNEMONIC"`
	MnemonicLength int           `envconfig:"MNEMONIC_LENGTH" default:"24"`
	Port           string        `envconfig:"PORT" default:"8080"`
	PayCooldown    int           `envconfig:"PAY_COOLDOWN_MINUTES" default:"4"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL" default:"1500ms"`
	ConfirmTimeout time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"3m"`
	WalletFilePath string        `envconfig:"WALLET_FILE_PATH"`
	MainnetConfig  string        `envconfig:"CONFIG_URL_MAINNET"`
	TestnetConfig  string        `envconfig:"CONFIG_URL_TESTNET"`
	RateCurrency   string        `envconfig:"RATE_CURRENCY" default:"usd"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads .env from the working directory when present, then reads
// configuration from environment variables. Variables already set win over .env.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.MnemonicLength <= 0 {
		return fmt.Errorf("MNEMONIC_LENGTH must be positive, got %d", c.MnemonicLength)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}

	cfg = c
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

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetPayCooldown returns cooldown from configuration
func GetPayCooldown() time.Duration {
	return time.Duration(Get().PayCooldown) * time.Minute
}

// GetWalletFilePath returns path to .cwt file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// ClearPassword wipes the in-memory password.
func ClearPassword() {
	clear(passwordBytes)
	passwordBytes = nil
}
