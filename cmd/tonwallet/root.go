package main

import (
	"fmt"
	"strings"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/config"
	"github.com/AlexZinkM/ton-wallet/internal/crypto"
	"github.com/AlexZinkM/ton-wallet/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	network string
	output  string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "tonwallet",
		Short:         "TON wallet v4r2 session manager",
		Long:          "Resolve, inspect and spend from a TON wallet derived from a 24 word recovery phrase.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			config.ClearPassword()
		},
	}

	root.PersistentFlags().StringVar(&a.network, "network", "", "Network to use: testnet|mainnet (overrides NETWORK)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "plain", "Output format: plain|json")

	root.AddCommand(
		newAddressCmd(a),
		newBalanceCmd(a),
		newSeqnoCmd(a),
		newDeployedCmd(a),
		newTransferCmd(a),
		newGenerateCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	if err := config.Init(); err != nil {
		return err
	}
	a.cfg = config.Get()
	if a.network != "" {
		a.cfg.Network = a.network
	}

	logger, err := newLogger(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

// newSession wires a session from configuration. An absent NETWORK falls back to testnet.
func (a *app) newSession() *session.Session {
	c := a.cfg

	opts := []session.OptFunc{
		session.WithEndpointResolver(client.NewConfigResolver(c.MainnetConfig, c.TestnetConfig)),
		session.WithLogger(a.logger),
	}
	if strings.TrimSpace(c.Mnemonic) == "" && c.WalletFilePath != "" {
		opts = append(opts, session.WithPhraseSource(keystorePhrase(c.WalletFilePath)))
	}

	return session.New(session.Config{
		Network:        c.Network,
		DefaultNetwork: client.Testnet.String(),
		Mnemonic:       c.Mnemonic,
		MnemonicLength: c.MnemonicLength,
		PollInterval:   c.PollInterval,
		ConfirmTimeout: c.ConfirmTimeout,
	}, opts...)
}

// keystorePhrase reads the recovery phrase from the encrypted keystore,
// prompting for its password when none is in memory yet.
func keystorePhrase(path string) session.PhraseSource {
	return func() (string, error) {
		password, err := passwordBytes()
		if err != nil {
			return "", err
		}
		defer clear(password)

		return crypto.ReadMnemonic(path, password)
	}
}

func passwordBytes() ([]byte, error) {
	if password, err := config.GetPasswordBytes(); err == nil {
		return password, nil
	}
	if err := config.PromptForPassword(); err != nil {
		return nil, err
	}
	return config.GetPasswordBytes()
}
