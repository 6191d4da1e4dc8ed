package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/ton-wallet/internal/config"
	"github.com/AlexZinkM/ton-wallet/internal/model"
	"github.com/AlexZinkM/ton-wallet/internal/session"
	"github.com/AlexZinkM/ton-wallet/wallet"

	"go.uber.org/zap"
)

// Wallet is the session surface the handlers need.
type Wallet interface {
	wallet.Account
	wallet.Payer
}

// TonHandler serves wallet operations for one session
type TonHandler struct {
	wallet   Wallet
	filePath string
	words    int
	cooldown *wallet.Cooldown
	rates    wallet.RateSource
	currency string
	password func() ([]byte, error)
	logger   *zap.Logger
}

// NewTonHandler creates a new TonHandler with config values
func NewTonHandler(w Wallet, rates wallet.RateSource, logger *zap.Logger) *TonHandler {
	c := config.Get()
	return &TonHandler{
		wallet:   w,
		filePath: c.WalletFilePath,
		words:    c.MnemonicLength,
		cooldown: wallet.NewCooldown(config.GetPayCooldown()),
		rates:    rates,
		currency: c.RateCurrency,
		password: config.GetPasswordBytes,
		logger:   logger,
	}
}

// Generate handles POST /ton/generate
// @Summary      Generate new wallet
// @Description  Generates a new recovery phrase and wallet v4r2 address and saves them to an encrypted .cwt file
// @Tags         ton
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /ton/generate [post]
func (h *TonHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. should be POST", http.StatusMethodNotAllowed)
		return
	}

	if h.filePath == "" {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "'WALLET_FILE_PATH' is not set", Code: model.CodeConfig})
		return
	}

	network, err := h.wallet.Network()
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeConfig})
		return
	}
	defer clear(passwordBytes)

	address, err := wallet.GenerateWallet(h.filePath, passwordBytes, network, h.words)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("wallet generated", zap.String("address", address), zap.Stringer("network", network))
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
		Network: network.String(),
	})
}

// GetBalance handles GET /ton/balance
// @Summary      Get wallet balance
// @Description  Gets TON balance, deployment state and seqno, priced in the configured fiat currency
// @Tags         ton
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /ton/balance [get]
func (h *TonHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	balance, err := wallet.GetBalance(r.Context(), h.wallet, h.rates, h.currency)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// Pay handles POST /ton/pay
// @Summary      Send TON
// @Description  Sends TON to the specified address and waits for the wallet seqno to change.
// @Description  Returns 202 when the transfer was submitted but not confirmed.
// @Tags         ton
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.PayResponse
// @Success      202      {object}  model.PayResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Router       /ton/pay [post]
func (h *TonHandler) Pay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeValidation})
		return
	}

	payResp, err := wallet.Pay(r.Context(), h.wallet, h.cooldown, &req)
	if err != nil && payResp == nil {
		h.writeError(w, err)
		return
	}

	if err != nil {
		// submitted, outcome unknown
		h.logger.Warn("transfer not confirmed", zap.String("to", payResp.To), zap.String("outcome", payResp.Outcome), zap.Error(err))
		writeJSON(w, http.StatusAccepted, payResp)
		return
	}

	writeJSON(w, http.StatusOK, payResp)
}

func (h *TonHandler) writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("code", code), zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// classify maps an error to an HTTP status and an error code.
func classify(err error) (int, string) {
	switch {
	case wallet.IsValidationError(err):
		return http.StatusBadRequest, model.CodeValidation
	case wallet.IsInsufficientBalanceError(err):
		return http.StatusBadRequest, model.CodeInsufficient
	case wallet.IsCooldownError(err):
		return http.StatusTooManyRequests, model.CodeCooldown
	case wallet.IsFileExistsError(err):
		return http.StatusConflict, model.CodeFileExists
	case session.IsConfigError(err):
		return http.StatusInternalServerError, model.CodeConfig
	case session.IsDerivationError(err):
		return http.StatusInternalServerError, model.CodeDerivation
	case session.IsEndpointResolutionError(err):
		return http.StatusBadGateway, model.CodeEndpoint
	case errors.Is(err, session.ErrConfirmationTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, model.CodeTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, model.CodeCancelled
	case session.IsNetworkError(err):
		return http.StatusBadGateway, model.CodeNetwork
	}
	return http.StatusInternalServerError, model.CodeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
