package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
)

// Chain is the set of RPC calls the wallet needs from a TON node.
type Chain interface {
	GetSeqno(ctx context.Context, addr *address.Address) (uint32, error)
	GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error)
	IsContractDeployed(ctx context.Context, addr *address.Address) (bool, error)
	SendExternalMessage(ctx context.Context, msg *tlb.ExternalMessage) error
}

// ConfigResolver discovers lite servers by downloading the network global config.
type ConfigResolver struct {
	urls map[Network]string
}

// NewConfigResolver creates a resolver. Empty URLs fall back to ton.org configs.
func NewConfigResolver(mainnetURL, testnetURL string) *ConfigResolver {
	if mainnetURL == "" {
		mainnetURL = mainnetConfigURL
	}
	if testnetURL == "" {
		testnetURL = testnetConfigURL
	}

	return &ConfigResolver{
		urls: map[Network]string{
			Mainnet: mainnetURL,
			Testnet: testnetURL,
		},
	}
}

// Resolve fetches the global config for the network.
func (r *ConfigResolver) Resolve(ctx context.Context, network Network) (Endpoint, error) {
	url, ok := r.urls[network]
	if !ok {
		return Endpoint{}, fmt.Errorf("no config url for network %q", network)
	}

	cfg, err := liteclient.GetConfigFromUrl(ctx, url)
	if err != nil {
		return Endpoint{}, fmt.Errorf("failed to get global config from %s: %w", url, err)
	}

	if len(cfg.Liteservers) == 0 {
		return Endpoint{}, fmt.Errorf("global config from %s has no lite servers", url)
	}

	return Endpoint{
		Network: network,
		URL:     url,
		Config:  cfg,
	}, nil
}

// TonDialer opens lite server connections for an endpoint.
type TonDialer struct{}

// Dial connects to the endpoint's lite servers.
func (TonDialer) Dial(ctx context.Context, ep Endpoint) (Chain, error) {
	if ep.Config == nil {
		return nil, errors.New("endpoint has no global config")
	}

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfig(ctx, ep.Config); err != nil {
		return nil, fmt.Errorf("failed to connect to lite servers: %w", err)
	}

	return &TonClient{
		api: ton.NewAPIClient(pool).WithRetry(),
	}, nil
}

// TonClient is a client for working with TON lite servers
type TonClient struct {
	api ton.APIClientWrapped
}

// GetSeqno runs the wallet seqno get-method. A wallet that was never deployed reports 0.
func (c *TonClient) GetSeqno(ctx context.Context, addr *address.Address) (uint32, error) {
	block, err := c.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get masterchain info: %w", err)
	}

	res, err := c.api.RunGetMethod(ctx, block, addr, "seqno")
	if err != nil {
		var execErr ton.ContractExecError
		if errors.As(err, &execErr) && execErr.Code == ton.ErrCodeContractNotInitialized {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to run seqno method: %w", err)
	}

	seqno, err := res.Int(0)
	if err != nil {
		return 0, fmt.Errorf("failed to parse seqno: %w", err)
	}

	return uint32(seqno.Uint64()), nil
}

// GetBalance gets the account balance in nanotons
func (c *TonClient) GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error) {
	acc, err := c.getAccount(ctx, addr)
	if err != nil {
		return tlb.Coins{}, err
	}

	if !acc.IsActive || acc.State == nil {
		return tlb.FromNanoTONU(0), nil
	}

	return acc.State.Balance, nil
}

// IsContractDeployed reports whether the account has code and data on chain.
func (c *TonClient) IsContractDeployed(ctx context.Context, addr *address.Address) (bool, error) {
	acc, err := c.getAccount(ctx, addr)
	if err != nil {
		return false, err
	}

	return acc.IsActive && acc.State != nil && acc.State.Status == tlb.AccountStatusActive, nil
}

// SendExternalMessage submits a signed message to the network.
func (c *TonClient) SendExternalMessage(ctx context.Context, msg *tlb.ExternalMessage) error {
	if err := c.api.SendExternalMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to send external message: %w", err)
	}
	return nil
}

func (c *TonClient) getAccount(ctx context.Context, addr *address.Address) (*tlb.Account, error) {
	block, err := c.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get masterchain info: %w", err)
	}

	acc, err := c.api.GetAccount(ctx, block, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}
