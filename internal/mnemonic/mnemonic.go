// Package mnemonic converts TON recovery phrases into ed25519 keys.
package mnemonic

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

// DefaultLength is the word count of phrases produced by TON wallets.
const DefaultLength = 24

var (
	ErrEmptyPhrase       = errors.New("recovery phrase is empty")
	ErrUnknownWord       = errors.New("recovery phrase contains an unknown word")
	ErrUnsupportedLength = errors.New("only 24 word phrases can be generated")
)

// ToPrivateKey derives the wallet key from a recovery phrase.
// Derivation is deterministic: the same words and password always yield the same key.
func ToPrivateKey(words []string, password string) (ed25519.PrivateKey, error) {
	if len(words) == 0 {
		return nil, ErrEmptyPhrase
	}
	// TON phrases use the BIP-39 english list
	for _, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
	}

	w, err := wallet.FromSeedWithPassword(nil, words, password, wallet.V4R2)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return w.PrivateKey(), nil
}

// Validate reports whether words form a passwordless TON recovery phrase.
func Validate(words []string) error {
	_, err := ToPrivateKey(words, "")
	return err
}

// Generate returns a new passwordless recovery phrase of n words.
// Zero means DefaultLength.
func Generate(n int) ([]string, error) {
	if n <= 0 {
		n = DefaultLength
	}
	if n != DefaultLength {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedLength, n)
	}
	return wallet.NewSeed(), nil
}

// Split turns a whitespace separated phrase into words.
func Split(phrase string) []string {
	return strings.Fields(phrase)
}
