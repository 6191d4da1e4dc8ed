package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/ton-wallet/internal/api"
	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/config"
	"github.com/AlexZinkM/ton-wallet/internal/handler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the wallet HTTP API with swagger UI and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the keystore password is needed for generate and for reading the phrase
			if a.cfg.WalletFilePath != "" {
				if err := config.PromptForPassword(); err != nil {
					return err
				}
			}

			s := a.newSession()
			if strings.TrimSpace(a.cfg.Mnemonic) != "" || a.cfg.WalletFilePath == "" {
				// fail fast on a bad phrase; a missing keystore may still be generated
				if _, err := s.Address(); err != nil {
					return err
				}
			}

			h := handler.NewTonHandler(s, client.NewCoinGeckoClient(), a.logger)
			srv := &http.Server{
				Addr:              ":" + config.GetPort(),
				Handler:           api.SetupRouter(h),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := commandContext(cmd.Context())
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("server starting", zap.String("addr", srv.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("server shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
