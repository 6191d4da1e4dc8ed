package contract

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	// SendModePayFeesSeparately with SendModeIgnoreErrors is what wallet apps use for plain transfers
	SendModePayFeesSeparately = wallet.PayGasSeparately
	SendModeIgnoreErrors      = wallet.IgnoreErrors

	// DefaultMessageTTL is how long a signed transfer stays acceptable to the wallet.
	DefaultMessageTTL = 60 * time.Second

	maxMessages = 4
)

var ErrTooManyMessages = errors.New("wallet v4 accepts at most 4 messages per transfer")

// WalletV4 is the handle of a v4r2 wallet contract on the base workchain.
// BuildTransfer is not safe for concurrent use.
type WalletV4 struct {
	wallet    *wallet.Wallet
	spec      *wallet.SpecV4R2
	publicKey ed25519.PublicKey
	address   *address.Address
}

// NewWalletV4 builds the contract handle owned by key. The handle never talks
// to the network: seqno is supplied by the caller of BuildTransfer.
// The result depends only on its inputs.
func NewWalletV4(key ed25519.PrivateKey, ttl time.Duration) (*WalletV4, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: expected %d bytes", ed25519.PrivateKeySize)
	}
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}

	w, err := wallet.FromPrivateKey(nil, key, wallet.V4R2)
	if err != nil {
		return nil, fmt.Errorf("failed to init wallet: %w", err)
	}

	spec, ok := w.GetSpec().(*wallet.SpecV4R2)
	if !ok {
		return nil, fmt.Errorf("unexpected wallet spec %T", w.GetSpec())
	}
	spec.SetMessagesTTL(uint32(ttl / time.Second))

	pub := key.Public().(ed25519.PublicKey)
	addr, err := wallet.AddressFromPubKey(pub, wallet.V4R2, w.GetSubwalletID())
	if err != nil {
		return nil, fmt.Errorf("failed to compute address: %w", err)
	}

	return &WalletV4{
		wallet:    w,
		spec:      spec,
		publicKey: pub,
		address:   addr,
	}, nil
}

// Address returns the wallet address.
func (w *WalletV4) Address() *address.Address {
	return w.address
}

func (w *WalletV4) PublicKey() ed25519.PublicKey {
	return w.publicKey
}

// StateInit returns the contract code and data attached to the first transfer.
func (w *WalletV4) StateInit() (*tlb.StateInit, error) {
	return wallet.GetStateInit(w.publicKey, wallet.V4R2, w.wallet.GetSubwalletID())
}

// NewTransferMessage builds an internal value transfer to dest.
// An empty comment produces an empty body.
func NewTransferMessage(dest *address.Address, amount tlb.Coins, comment string, bounce bool) (*tlb.InternalMessage, error) {
	body := cell.BeginCell().EndCell()
	if comment != "" {
		var err error
		body, err = wallet.CreateCommentCell(comment)
		if err != nil {
			return nil, fmt.Errorf("failed to build comment: %w", err)
		}
	}

	return &tlb.InternalMessage{
		IHRDisabled: true,
		Bounce:      bounce,
		DstAddr:     dest,
		Amount:      amount,
		Body:        body,
	}, nil
}

// BuildTransfer signs msgs under seqno and wraps them into an external message
// addressed to the wallet. withStateInit attaches the contract code and data,
// which is required while the wallet is not deployed yet.
func (w *WalletV4) BuildTransfer(ctx context.Context, seqno uint32, withStateInit bool, msgs ...*tlb.InternalMessage) (*tlb.ExternalMessage, error) {
	if len(msgs) > maxMessages {
		return nil, ErrTooManyMessages
	}

	out := make([]*wallet.Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, &wallet.Message{
			Mode:            SendModePayFeesSeparately + SendModeIgnoreErrors,
			InternalMessage: msg,
		})
	}

	w.spec.SetSeqnoFetcher(func(context.Context, uint32) (uint32, error) {
		return seqno, nil
	})

	ext, err := w.wallet.PrepareExternalMessageForMany(ctx, withStateInit, out)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transfer: %w", err)
	}
	return ext, nil
}
