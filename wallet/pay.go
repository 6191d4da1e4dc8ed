package wallet

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/ton-wallet/internal/common"
	"github.com/AlexZinkM/ton-wallet/internal/model"
	"github.com/AlexZinkM/ton-wallet/internal/session"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

const (
	// kept on the wallet for forwarding and storage fees
	feeReserveNano = 50_000_000 // 0.05 TON
)

// Payer is the write side of a wallet session.
type Payer interface {
	Address() (*address.Address, error)
	BalanceCoins(ctx context.Context) (tlb.Coins, error)
	Transfer(ctx context.Context, req session.TransferRequest) (*session.Confirmation, error)
}

// Cooldown allows one payment per period. It also serializes payments.
type Cooldown struct {
	mu     sync.Mutex
	period time.Duration
	last   time.Time
	now    func() time.Time
}

func NewCooldown(period time.Duration) *Cooldown {
	return &Cooldown{period: period, now: time.Now}
}

// check must be called with c.mu held.
func (c *Cooldown) check() error {
	if c.last.IsZero() || c.period <= 0 {
		return nil
	}
	if elapsed := c.now().Sub(c.last); elapsed < c.period {
		return &CooldownError{Remaining: c.period - elapsed}
	}
	return nil
}

// Pay validates req, enforces the cooldown and the fee reserve, then transfers
// and waits for the wallet seqno to move.
//
// A transfer that was submitted but not confirmed returns both a response and an
// error; the cooldown starts as soon as a message is submitted.
func Pay(ctx context.Context, p Payer, cd *Cooldown, req *model.PayRequest) (*model.PayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	cd.mu.Lock()
	defer cd.mu.Unlock()

	if err := cd.check(); err != nil {
		return nil, err
	}

	from, err := p.Address()
	if err != nil {
		return nil, err
	}

	balance, err := p.BalanceCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check balance: %w", err)
	}

	amountNano, err := common.TONToNano(req.Amount)
	if err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("invalid amount: %w", err)}
	}

	balanceNano := balance.Nano().Uint64()
	if amountNano > balanceNano || balanceNano-amountNano < feeReserveNano {
		var maxNano uint64
		if balanceNano > feeReserveNano {
			maxNano = balanceNano - feeReserveNano
		}
		return nil, &InsufficientBalanceError{Message: fmt.Sprintf(
			"insufficient TON balance. Fee reserve: %s TON. Max you can send: %s TON",
			common.NanoToTON(feeReserveNano), common.NanoToTON(maxNano))}
	}

	conf, err := p.Transfer(ctx, session.TransferRequest{
		Destination: strings.TrimSpace(req.ToAddress),
		Amount:      tlb.FromNanoTONU(amountNano),
		Comment:     req.Comment,
		Bounce:      req.Bounce,
	})
	if conf == nil {
		if err == nil {
			err = fmt.Errorf("transfer returned no confirmation")
		}
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	cd.last = cd.now()

	return &model.PayResponse{
		Success:  conf.Success(),
		Outcome:  conf.Outcome.String(),
		From:     from.String(),
		To:       strings.TrimSpace(req.ToAddress),
		Amount:   common.NanoToTON(amountNano),
		Baseline: conf.Baseline,
		Seqno:    conf.Seqno,
		Polls:    conf.Polls,
	}, err
}
