package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/ton-wallet/internal/common"

	"github.com/xssnick/tonutils-go/address"
)

// PayRequest represents request for POST /ton/pay
type PayRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"` // TON, e.g. "0.01"
	Comment   string `json:"comment,omitempty"`
	Bounce    bool   `json:"bounce,omitempty"`
}

// Validate checks the destination address and the amount.
func (r *PayRequest) Validate() error {
	if strings.TrimSpace(r.ToAddress) == "" {
		return errors.New("toAddress is required")
	}
	if _, err := address.ParseAddr(strings.TrimSpace(r.ToAddress)); err != nil {
		return fmt.Errorf("invalid TON address: %w", err)
	}

	nano, err := common.TONToNano(r.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	if nano == 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

// PayResponse represents response for POST /ton/pay
type PayResponse struct {
	Success  bool   `json:"success"`
	Outcome  string `json:"outcome"`
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
	Baseline uint32 `json:"baselineSeqno"`
	Seqno    uint32 `json:"seqno"`
	Polls    int    `json:"polls"`
}
