package wallet

import (
	"errors"
	"fmt"
	"time"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// ValidationError reports a bad pay request.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CooldownError is returned while the pay cooldown is active.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, please wait %v", e.Remaining.Round(time.Second))
}

// InsufficientBalanceError reports that amount plus fee reserve exceeds the balance.
type InsufficientBalanceError struct {
	Message string
}

func (e *InsufficientBalanceError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var e *FileExistsError
	return errors.As(err, &e)
}

// IsValidationError checks if error is ValidationError
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsCooldownError checks if error is CooldownError
func IsCooldownError(err error) bool {
	var e *CooldownError
	return errors.As(err, &e)
}

// IsInsufficientBalanceError checks if error is InsufficientBalanceError
func IsInsufficientBalanceError(err error) bool {
	var e *InsufficientBalanceError
	return errors.As(err, &e)
}
