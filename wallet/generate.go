package wallet

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/contract"
	"github.com/AlexZinkM/ton-wallet/internal/crypto"
	"github.com/AlexZinkM/ton-wallet/internal/mnemonic"
	"github.com/AlexZinkM/ton-wallet/internal/model"

	"github.com/skip2/go-qrcode"
)

// GenerateWallet creates a new recovery phrase of the given length, derives the
// wallet v4r2 address and saves both to an encrypted .cwt file.
// Returns the user-friendly address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte, network client.Network, words int) (string, error) {
	if filepath.Ext(filePath) != ".cwt" {
		return "", errors.New("file must have .cwt extension")
	}
	if len(password) == 0 {
		return "", errors.New("password cannot be empty")
	}

	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Message: "file is not empty"}
	}

	phrase, err := mnemonic.Generate(words)
	if err != nil {
		return "", fmt.Errorf("failed to generate recovery phrase: %w", err)
	}

	key, err := mnemonic.ToPrivateKey(phrase, "")
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	w, err := contract.NewWalletV4(key, contract.DefaultMessageTTL)
	if err != nil {
		return "", fmt.Errorf("failed to build wallet contract: %w", err)
	}

	addr := w.Address().Copy()
	addr.SetTestnetOnly(network == client.Testnet)
	// fresh wallets are not deployed, bounceable transfers to them would return
	addr.SetBounce(false)
	address := addr.String()

	qrCode, err := generateQRCode("ton://transfer/" + address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		Mnemonic:  []byte(strings.Join(phrase, " ")),
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	defer clear(walletData.Mnemonic)

	if err := crypto.EncryptWallet(filePath, network.String(), address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of the payment link in base64
func generateQRCode(link string) (string, error) {
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
