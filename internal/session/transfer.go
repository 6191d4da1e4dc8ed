package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/ton-wallet/internal/contract"
	"github.com/AlexZinkM/ton-wallet/internal/metrics"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"go.uber.org/zap"
)

// Outcome is how a confirmation wait ended.
type Outcome int

const (
	OutcomeConfirmed Outcome = iota + 1
	OutcomeTimedOut
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// TransferRequest describes a value transfer from the session wallet.
type TransferRequest struct {
	Destination string
	Amount      tlb.Coins
	// Comment is sent as a text body when not empty.
	Comment string
	Bounce  bool
}

// Confirmation is the result of a submitted transfer.
type Confirmation struct {
	Outcome Outcome
	// Baseline is the seqno the transfer was signed with.
	Baseline uint32
	// Seqno is the last observed seqno.
	Seqno uint32
	// Polls is the number of seqno queries after submission.
	Polls int
}

// Success reports whether the wallet seqno moved past the baseline.
func (c *Confirmation) Success() bool {
	return c != nil && c.Outcome == OutcomeConfirmed
}

// Transfer signs and submits a transfer, then polls the wallet seqno every
// PollInterval until it differs from the value the transfer was signed with.
//
// The wait ends early when ctx is done or ConfirmTimeout elapses; the returned
// Confirmation then carries OutcomeCancelled or OutcomeTimedOut along with an error.
// A failed seqno query aborts the wait with a NetworkError. Resolution and
// submission errors return a nil Confirmation.
func (s *Session) Transfer(ctx context.Context, req TransferRequest) (*Confirmation, error) {
	dest, err := address.ParseAddr(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("invalid destination address: %w", err)
	}

	s.transferMu.Lock()
	defer s.transferMu.Unlock()

	r, err := s.ensure(ctx, stageClient, stageContract, stageAddress)
	if err != nil {
		return nil, err
	}

	baseline, err := fetchSeqno(ctx, r)
	if err != nil {
		return nil, err
	}

	msg, err := contract.NewTransferMessage(dest, req.Amount, req.Comment, req.Bounce)
	if err != nil {
		return nil, err
	}

	// an undeployed wallet reports seqno 0 and needs its code attached
	ext, err := r.contract.BuildTransfer(ctx, baseline, baseline == 0, msg)
	if err != nil {
		return nil, err
	}

	if err := r.chain.SendExternalMessage(ctx, ext); err != nil {
		return nil, &NetworkError{Op: "send transfer", Err: err}
	}

	s.logger.Info("transfer submitted",
		zap.String("from", r.addr.String()),
		zap.String("to", dest.String()),
		zap.String("amount", req.Amount.String()),
		zap.Uint32("seqno", baseline),
	)

	conf, err := s.awaitSeqnoChange(ctx, r, baseline)
	metrics.Transfers.WithLabelValues(conf.Outcome.String()).Inc()

	s.logger.Info("transfer finished",
		zap.Stringer("outcome", conf.Outcome),
		zap.Uint32("baseline", conf.Baseline),
		zap.Uint32("seqno", conf.Seqno),
		zap.Int("polls", conf.Polls),
		zap.Error(err),
	)

	return conf, err
}

func (s *Session) awaitSeqnoChange(ctx context.Context, r resources, baseline uint32) (*Confirmation, error) {
	conf := &Confirmation{Baseline: baseline, Seqno: baseline}

	if s.cfg.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ConfirmTimeout)
		defer cancel()
	}

	for conf.Seqno == baseline {
		if err := s.sleep(ctx, s.cfg.PollInterval); err != nil {
			return conf, stopped(conf, err)
		}

		seqno, err := fetchSeqno(ctx, r)
		conf.Polls++
		metrics.SeqnoPolls.Inc()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return conf, stopped(conf, ctxErr)
			}
			conf.Outcome = OutcomeFailed
			return conf, err
		}

		conf.Seqno = seqno
	}

	conf.Outcome = OutcomeConfirmed
	return conf, nil
}

// stopped records why the wait ended early.
func stopped(conf *Confirmation, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		conf.Outcome = OutcomeTimedOut
		return fmt.Errorf("%w: seqno still %d after %d polls", ErrConfirmationTimeout, conf.Baseline, conf.Polls)
	}

	conf.Outcome = OutcomeCancelled
	return fmt.Errorf("transfer confirmation cancelled: %w", err)
}

