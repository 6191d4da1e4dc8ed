// Package session manages a single TON wallet: it lazily resolves the recovery
// phrase, keys, wallet contract, address, network endpoint and RPC client, caches
// each of them once resolved, and submits transfers that are confirmed by watching
// the wallet seqno.
//
// Resolution order lives in one place (see stageDeps in resolve.go). Every public
// accessor asks for the stages it needs and the session resolves whatever is
// missing top to bottom. A failed stage stores nothing, so the next call retries it.
package session

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/contract"
	"github.com/AlexZinkM/ton-wallet/internal/mnemonic"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"go.uber.org/zap"
)

const (
	DefaultMnemonicLength = mnemonic.DefaultLength
	DefaultPollInterval   = 1500 * time.Millisecond
)

// Config is the immutable input of a session.
type Config struct {
	// Network selector, "testnet" or "mainnet".
	Network string
	// DefaultNetwork is used when Network is empty. Empty means no default.
	DefaultNetwork string
	// Mnemonic is the whitespace separated recovery phrase.
	Mnemonic string
	// MnemonicLength is the expected word count, 24 when zero.
	MnemonicLength int
	// PollInterval between seqno checks while confirming a transfer.
	PollInterval time.Duration
	// ConfirmTimeout bounds the confirmation wait. Zero waits until ctx is done.
	ConfirmTimeout time.Duration
}

type KeyPair struct {
	Public ed25519.PublicKey
	Secret ed25519.PrivateKey
}

// EndpointResolver looks up the network access point.
type EndpointResolver interface {
	Resolve(ctx context.Context, network client.Network) (client.Endpoint, error)
}

// Dialer binds an RPC client to an endpoint.
type Dialer interface {
	Dial(ctx context.Context, ep client.Endpoint) (client.Chain, error)
}

// DeriveFunc turns recovery phrase words into a private key.
type DeriveFunc func(words []string) (ed25519.PrivateKey, error)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// PhraseSource supplies the recovery phrase when Config.Mnemonic is empty.
type PhraseSource func() (string, error)

type Session struct {
	cfg Config

	resolver EndpointResolver
	dialer   Dialer
	derive   DeriveFunc
	sleep    SleepFunc
	phrase   PhraseSource
	logger   *zap.Logger

	mu    sync.Mutex
	state resources

	// one transfer at a time: seqno baselines would race otherwise
	transferMu sync.Mutex
}

type OptFunc func(s *Session)

func WithEndpointResolver(r EndpointResolver) OptFunc {
	return func(s *Session) {
		s.resolver = r
	}
}

func WithDialer(d Dialer) OptFunc {
	return func(s *Session) {
		s.dialer = d
	}
}

func WithKeyDerivation(fn DeriveFunc) OptFunc {
	return func(s *Session) {
		s.derive = fn
	}
}

func WithSleeper(fn SleepFunc) OptFunc {
	return func(s *Session) {
		s.sleep = fn
	}
}

func WithPhraseSource(fn PhraseSource) OptFunc {
	return func(s *Session) {
		s.phrase = fn
	}
}

func WithLogger(l *zap.Logger) OptFunc {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a session. Nothing is resolved until first use.
func New(cfg Config, optFns ...OptFunc) *Session {
	if cfg.MnemonicLength <= 0 {
		cfg.MnemonicLength = DefaultMnemonicLength
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	s := &Session{
		cfg:      cfg,
		resolver: client.NewConfigResolver("", ""),
		dialer:   client.TonDialer{},
		derive: func(words []string) (ed25519.PrivateKey, error) {
			return mnemonic.ToPrivateKey(words, "")
		},
		sleep:  sleepContext,
		logger: zap.NewNop(),
	}
	for _, fn := range optFns {
		fn(s)
	}

	return s
}

// Network returns the selected network.
func (s *Session) Network() (client.Network, error) {
	r, err := s.ensure(context.Background(), stageNetwork)
	if err != nil {
		return "", err
	}
	return r.network, nil
}

// Credentials returns the recovery phrase words.
func (s *Session) Credentials() ([]string, error) {
	r, err := s.ensure(context.Background(), stageCredentials)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), r.words...), nil
}

// KeyPair returns a copy of the wallet key pair derived from the recovery phrase.
// Callers may wipe it without affecting the session.
func (s *Session) KeyPair() (KeyPair, error) {
	r, err := s.ensure(context.Background(), stageKeyPair)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{
		Public: bytes.Clone(r.keys.Public),
		Secret: bytes.Clone(r.keys.Secret),
	}, nil
}

// Contract returns the wallet contract handle.
func (s *Session) Contract() (*contract.WalletV4, error) {
	r, err := s.ensure(context.Background(), stageContract)
	if err != nil {
		return nil, err
	}
	return r.contract, nil
}

// Address returns the wallet address.
func (s *Session) Address() (*address.Address, error) {
	r, err := s.ensure(context.Background(), stageAddress)
	if err != nil {
		return nil, err
	}
	return r.addr, nil
}

// Endpoint returns the resolved network endpoint.
// It is resolved once per session, see ResetEndpoint.
func (s *Session) Endpoint(ctx context.Context) (client.Endpoint, error) {
	r, err := s.ensure(ctx, stageEndpoint)
	if err != nil {
		return client.Endpoint{}, err
	}
	return *r.endpoint, nil
}

// Client returns the RPC client bound to the endpoint.
func (s *Session) Client(ctx context.Context) (client.Chain, error) {
	r, err := s.ensure(ctx, stageClient)
	if err != nil {
		return nil, err
	}
	return r.chain, nil
}

// ResetEndpoint drops the cached endpoint and the client bound to it.
// The next network call resolves both again.
func (s *Session) ResetEndpoint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.endpoint = nil
	s.state.chain = nil
}

// Seqno queries the current wallet seqno. It is never cached.
func (s *Session) Seqno(ctx context.Context) (uint32, error) {
	r, err := s.ensure(ctx, stageClient, stageAddress)
	if err != nil {
		return 0, err
	}
	return fetchSeqno(ctx, r)
}

// BalanceCoins queries the wallet balance.
func (s *Session) BalanceCoins(ctx context.Context) (tlb.Coins, error) {
	r, err := s.ensure(ctx, stageClient, stageAddress)
	if err != nil {
		return tlb.Coins{}, err
	}

	balance, err := r.chain.GetBalance(ctx, r.addr)
	if err != nil {
		return tlb.Coins{}, &NetworkError{Op: "get balance", Err: err}
	}
	return balance, nil
}

// Balance queries the wallet balance formatted as a decimal TON string.
func (s *Session) Balance(ctx context.Context) (string, error) {
	balance, err := s.BalanceCoins(ctx)
	if err != nil {
		return "", err
	}
	return balance.String(), nil
}

// IsDeployed reports whether the wallet contract is active on chain.
func (s *Session) IsDeployed(ctx context.Context) (bool, error) {
	r, err := s.ensure(ctx, stageClient, stageAddress)
	if err != nil {
		return false, err
	}

	deployed, err := r.chain.IsContractDeployed(ctx, r.addr)
	if err != nil {
		return false, &NetworkError{Op: "check deployment", Err: err}
	}
	return deployed, nil
}

func fetchSeqno(ctx context.Context, r resources) (uint32, error) {
	seqno, err := r.chain.GetSeqno(ctx, r.addr)
	if err != nil {
		return 0, &NetworkError{Op: "get seqno", Err: err}
	}
	return seqno, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
