package session

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/ton-wallet/internal/client"
)

var (
	ErrNotSet              = errors.New("is not set")
	ErrInvalidPhrase       = errors.New("is invalid")
	ErrConfirmationTimeout = errors.New("transfer was not confirmed in time")
)

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("'%s' %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DerivationError reports a failure to derive keys or the contract from the recovery phrase.
type DerivationError struct {
	Err error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("failed to derive wallet keys: %v", e.Err)
}

func (e *DerivationError) Unwrap() error {
	return e.Err
}

// EndpointResolutionError reports a failed endpoint lookup for a network.
type EndpointResolutionError struct {
	Network client.Network
	Err     error
}

func (e *EndpointResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s endpoint: %v", e.Network, e.Err)
}

func (e *EndpointResolutionError) Unwrap() error {
	return e.Err
}

// NetworkError reports a failed RPC call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsConfigError checks if err is or wraps a ConfigError
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsDerivationError checks if err is or wraps a DerivationError
func IsDerivationError(err error) bool {
	var e *DerivationError
	return errors.As(err, &e)
}

// IsEndpointResolutionError checks if err is or wraps an EndpointResolutionError
func IsEndpointResolutionError(err error) bool {
	var e *EndpointResolutionError
	return errors.As(err, &e)
}

// IsNetworkError checks if err is or wraps a NetworkError
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}
