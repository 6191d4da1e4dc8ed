package session

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/contract"
	"github.com/AlexZinkM/ton-wallet/internal/metrics"
	"github.com/AlexZinkM/ton-wallet/internal/mnemonic"

	"github.com/xssnick/tonutils-go/address"
	"go.uber.org/zap"
)

type stage int

const (
	stageNetwork stage = iota
	stageCredentials
	stageKeyPair
	stageContract
	stageAddress
	stageEndpoint
	stageClient
	numStages
)

var stageNames = [numStages]string{
	stageNetwork:     "network",
	stageCredentials: "credentials",
	stageKeyPair:     "key_pair",
	stageContract:    "contract",
	stageAddress:     "address",
	stageEndpoint:    "endpoint",
	stageClient:      "client",
}

// stageDeps lists direct prerequisites. A stage only depends on lower stages,
// so walking stages in order resolves prerequisites first.
var stageDeps = [numStages][]stage{
	stageKeyPair:  {stageCredentials},
	stageContract: {stageKeyPair},
	stageAddress:  {stageContract},
	stageEndpoint: {stageNetwork},
	stageClient:   {stageEndpoint},
}

func (st stage) String() string {
	return stageNames[st]
}

// resources holds everything resolved so far. Nil or empty means unresolved.
type resources struct {
	network  client.Network
	words    []string
	keys     *KeyPair
	contract *contract.WalletV4
	addr     *address.Address
	endpoint *client.Endpoint
	chain    client.Chain
}

func (r *resources) has(st stage) bool {
	switch st {
	case stageNetwork:
		return r.network != ""
	case stageCredentials:
		return r.words != nil
	case stageKeyPair:
		return r.keys != nil
	case stageContract:
		return r.contract != nil
	case stageAddress:
		return r.addr != nil
	case stageEndpoint:
		return r.endpoint != nil
	case stageClient:
		return r.chain != nil
	}
	return false
}

// ensure resolves targets and their prerequisites, then returns a snapshot of
// the resolved resources. The first failing stage aborts the walk.
func (s *Session) ensure(ctx context.Context, targets ...stage) (resources, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var need [numStages]bool
	var mark func(st stage)
	mark = func(st stage) {
		if need[st] {
			return
		}
		need[st] = true
		for _, dep := range stageDeps[st] {
			mark(dep)
		}
	}
	for _, t := range targets {
		mark(t)
	}

	for st := stage(0); st < numStages; st++ {
		if !need[st] || s.state.has(st) {
			continue
		}
		if err := s.resolve(ctx, st); err != nil {
			s.logger.Debug("resolution failed", zap.Stringer("stage", st), zap.Error(err))
			return resources{}, err
		}
		metrics.Resolutions.WithLabelValues(st.String()).Inc()
		s.logger.Debug("resolved", zap.Stringer("stage", st))
	}

	return s.state, nil
}

// resolve runs one stage. Called with s.mu held and prerequisites resolved.
func (s *Session) resolve(ctx context.Context, st stage) error {
	switch st {
	case stageNetwork:
		return s.resolveNetwork()
	case stageCredentials:
		return s.resolveCredentials()
	case stageKeyPair:
		return s.deriveKeyPair()
	case stageContract:
		return s.deriveContract()
	case stageAddress:
		s.state.addr = s.state.contract.Address()
		return nil
	case stageEndpoint:
		return s.resolveEndpoint(ctx)
	case stageClient:
		return s.createClient(ctx)
	}
	return fmt.Errorf("unknown stage %d", st)
}

func (s *Session) resolveNetwork() error {
	raw := strings.TrimSpace(s.cfg.Network)
	if raw == "" {
		if s.cfg.DefaultNetwork == "" {
			return &ConfigError{Key: "NETWORK", Err: ErrNotSet}
		}
		raw = s.cfg.DefaultNetwork
	}

	network, err := client.ParseNetwork(raw)
	if err != nil {
		return &ConfigError{Key: "NETWORK", Err: err}
	}

	s.state.network = network
	return nil
}

func (s *Session) resolveCredentials() error {
	phrase := s.cfg.Mnemonic
	if strings.TrimSpace(phrase) == "" && s.phrase != nil {
		var err error
		phrase, err = s.phrase()
		if err != nil {
			return &ConfigError{Key: "WALLET_FILE_PATH", Err: err}
		}
	}

	words := mnemonic.Split(phrase)
	if len(words) == 0 {
		return &ConfigError{Key: "MNEMONIC", Err: ErrNotSet}
	}
	if len(words) != s.cfg.MnemonicLength {
		return &ConfigError{
			Key: "MNEMONIC",
			Err: fmt.Errorf("%w: expected %d words, got %d", ErrInvalidPhrase, s.cfg.MnemonicLength, len(words)),
		}
	}

	s.state.words = words
	return nil
}

func (s *Session) deriveKeyPair() error {
	priv, err := s.derive(s.state.words)
	if err != nil {
		return &DerivationError{Err: err}
	}

	s.state.keys = &KeyPair{
		Public: priv.Public().(ed25519.PublicKey),
		Secret: priv,
	}
	return nil
}

func (s *Session) deriveContract() error {
	w, err := contract.NewWalletV4(s.state.keys.Secret, contract.DefaultMessageTTL)
	if err != nil {
		return &DerivationError{Err: err}
	}

	s.state.contract = w
	return nil
}

func (s *Session) resolveEndpoint(ctx context.Context) error {
	ep, err := s.resolver.Resolve(ctx, s.state.network)
	if err != nil {
		return &EndpointResolutionError{Network: s.state.network, Err: err}
	}

	s.state.endpoint = &ep
	s.logger.Info("endpoint resolved", zap.Stringer("network", ep.Network), zap.String("url", ep.URL))
	return nil
}

func (s *Session) createClient(ctx context.Context) error {
	chain, err := s.dialer.Dial(ctx, *s.state.endpoint)
	if err != nil {
		return &NetworkError{Op: "connect to endpoint", Err: err}
	}

	s.state.chain = chain
	return nil
}
