package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xssnick/tonutils-go/liteclient"
)

// Network identifies the TON network a wallet talks to.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

const (
	mainnetConfigURL = "https://ton.org/global.config.json"
	testnetConfigURL = "https://ton.org/testnet-global.config.json"
)

var ErrUnknownNetwork = errors.New("should only be 'testnet' or 'mainnet'")

// ParseNetwork accepts only the two known network identifiers.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(strings.TrimSpace(s)); n {
	case Mainnet, Testnet:
		return n, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrUnknownNetwork, s)
	}
}

func (n Network) String() string {
	return string(n)
}

// Endpoint is a resolved network access point: the discovery URL and the
// lite server list it returned.
type Endpoint struct {
	Network Network
	URL     string
	Config  *liteclient.GlobalConfig
}
