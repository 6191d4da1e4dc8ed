package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/common"
	"github.com/AlexZinkM/ton-wallet/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

// Account is the read side of a wallet session.
type Account interface {
	Network() (client.Network, error)
	Address() (*address.Address, error)
	BalanceCoins(ctx context.Context) (tlb.Coins, error)
	IsDeployed(ctx context.Context) (bool, error)
	Seqno(ctx context.Context) (uint32, error)
}

// RateSource prices TON in a fiat currency.
type RateSource interface {
	GetTONRate(currency string) (string, error)
}

// GetBalance gets wallet balance, deployment state and seqno.
// When rates is not nil the balance is also priced in currency.
func GetBalance(ctx context.Context, acc Account, rates RateSource, currency string) (*model.BalanceResponse, error) {
	network, err := acc.Network()
	if err != nil {
		return nil, err
	}

	addr, err := acc.Address()
	if err != nil {
		return nil, err
	}

	coins, err := acc.BalanceCoins(ctx)
	if err != nil {
		return nil, err
	}

	deployed, err := acc.IsDeployed(ctx)
	if err != nil {
		return nil, err
	}

	seqno, err := acc.Seqno(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.BalanceResponse{
		Address:  FriendlyAddress(addr, network),
		Network:  network.String(),
		TON:      common.NanoToTON(coins.Nano().Uint64()),
		Deployed: deployed,
		Seqno:    seqno,
	}

	if rates == nil {
		return resp, nil
	}

	rate, err := rates.GetTONRate(currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}

	fiat, err := fiatValue(resp.TON, rate)
	if err != nil {
		return nil, err
	}

	resp.Currency = strings.ToLower(currency)
	resp.Rate = rate
	resp.Fiat = fiat
	return resp, nil
}

// FriendlyAddress formats addr for display on network without touching the shared value.
func FriendlyAddress(addr *address.Address, network client.Network) string {
	a := addr.Copy()
	a.SetTestnetOnly(network == client.Testnet)
	return a.String()
}

func fiatValue(ton, rate string) (string, error) {
	amount, err := decimal.NewFromString(ton)
	if err != nil {
		return "", fmt.Errorf("invalid balance %q: %w", ton, err)
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return "", fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	return amount.Mul(r).StringFixed(2), nil
}
