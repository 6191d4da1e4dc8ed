package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeConfig       = "config"
	CodeDerivation   = "derivation"
	CodeEndpoint     = "endpoint"
	CodeNetwork      = "network"
	CodeTimeout      = "timeout"
	CodeCancelled    = "cancelled"
	CodeValidation   = "validation"
	CodeCooldown     = "cooldown"
	CodeFileExists   = "file_exists"
	CodeInsufficient = "insufficient_balance"
	CodeInternal     = "internal"
)
