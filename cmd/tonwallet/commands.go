package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/common"
	"github.com/AlexZinkM/ton-wallet/internal/model"
	"github.com/AlexZinkM/ton-wallet/internal/session"
	"github.com/AlexZinkM/ton-wallet/wallet"

	"github.com/spf13/cobra"
	"github.com/xssnick/tonutils-go/tlb"
)

func newAddressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newSession()

			network, err := s.Network()
			if err != nil {
				return err
			}
			addr, err := s.Address()
			if err != nil {
				return err
			}

			return a.print(cmd.OutOrStdout(), map[string]string{
				"address": wallet.FriendlyAddress(addr, network),
				"raw":     fmt.Sprintf("%d:%x", addr.Workchain(), addr.Data()),
				"network": network.String(),
			}, wallet.FriendlyAddress(addr, network))
		},
	}
}

func newBalanceCmd(a *app) *cobra.Command {
	var fiat bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Query wallet balance, deployment state and seqno",
		Example: `  tonwallet balance
  tonwallet balance --fiat -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rates wallet.RateSource
			if fiat {
				rates = client.NewCoinGeckoClient()
			}

			b, err := wallet.GetBalance(cmd.Context(), a.newSession(), rates, a.cfg.RateCurrency)
			if err != nil {
				return err
			}

			plain := fmt.Sprintf("Address: %s\nNetwork: %s\nBalance: %s TON\nDeployed: %t\nSeqno: %d",
				b.Address, b.Network, b.TON, b.Deployed, b.Seqno)
			if b.Fiat != "" {
				plain += fmt.Sprintf("\nValue: %s %s (rate %s)", b.Fiat, strings.ToUpper(b.Currency), b.Rate)
			}
			return a.print(cmd.OutOrStdout(), b, plain)
		},
	}

	cmd.Flags().BoolVar(&fiat, "fiat", false, "Also price the balance in RATE_CURRENCY")
	return cmd
}

func newSeqnoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seqno",
		Short: "Query the current wallet sequence number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seqno, err := a.newSession().Seqno(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), map[string]uint32{"seqno": seqno}, fmt.Sprint(seqno))
		},
	}
}

func newDeployedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deployed",
		Short: "Check whether the wallet contract is deployed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deployed, err := a.newSession().IsDeployed(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), map[string]bool{"deployed": deployed}, fmt.Sprint(deployed))
		},
	}
}

func newTransferCmd(a *app) *cobra.Command {
	var (
		comment string
		bounce  bool
	)

	cmd := &cobra.Command{
		Use:   "transfer <destination> <amount>",
		Short: "Send TON and wait for the wallet seqno to change",
		Example: `  tonwallet transfer EQD...abc 0.01
  tonwallet transfer EQD...abc 1.5 --comment "invoice 42" --bounce`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.PayRequest{ToAddress: args[0], Amount: args[1], Comment: comment, Bounce: bounce}
			if err := req.Validate(); err != nil {
				return err
			}
			nano, err := common.TONToNano(req.Amount)
			if err != nil {
				return err
			}

			ctx, stop := commandContext(cmd.Context())
			defer stop()

			conf, err := a.newSession().Transfer(ctx, session.TransferRequest{
				Destination: strings.TrimSpace(req.ToAddress),
				Amount:      tlb.FromNanoTONU(nano),
				Comment:     req.Comment,
				Bounce:      req.Bounce,
			})
			if conf == nil {
				return err
			}

			out := model.PayResponse{
				Success:  conf.Success(),
				Outcome:  conf.Outcome.String(),
				To:       strings.TrimSpace(req.ToAddress),
				Amount:   common.NanoToTON(nano),
				Baseline: conf.Baseline,
				Seqno:    conf.Seqno,
				Polls:    conf.Polls,
			}
			plain := fmt.Sprintf("Outcome: %s\nSeqno: %d -> %d\nPolls: %d", out.Outcome, out.Baseline, out.Seqno, out.Polls)
			if perr := a.print(cmd.OutOrStdout(), out, plain); perr != nil {
				return perr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Text comment attached to the transfer")
	cmd.Flags().BoolVar(&bounce, "bounce", false, "Bounce the value back if the destination fails")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new wallet into an encrypted .cwt keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.WalletFilePath
			}
			if file == "" {
				return errors.New("no keystore path: pass --file or set WALLET_FILE_PATH")
			}

			network, err := a.newSession().Network()
			if err != nil {
				return err
			}

			password, err := passwordBytes()
			if err != nil {
				return err
			}
			defer clear(password)

			address, err := wallet.GenerateWallet(file, password, network, a.cfg.MnemonicLength)
			if err != nil {
				return err
			}

			return a.print(cmd.OutOrStdout(), model.GenerateResponse{
				Success: true,
				Message: "Wallet generated successfully",
				Address: address,
				Network: network.String(),
			}, address)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Keystore path (defaults to WALLET_FILE_PATH)")
	return cmd
}

// print writes v as JSON with -o json, plain otherwise.
func (a *app) print(w io.Writer, v any, plain string) error {
	if a.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, plain)
	return err
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
