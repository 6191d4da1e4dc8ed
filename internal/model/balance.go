package model

// BalanceResponse represents response for GET /ton/balance
type BalanceResponse struct {
	Address  string `json:"address"`
	Network  string `json:"network"`
	TON      string `json:"ton"`
	Deployed bool   `json:"deployed"`
	Seqno    uint32 `json:"seqno"`
	Currency string `json:"currency,omitempty"`
	Rate     string `json:"rate,omitempty"`
	Fiat     string `json:"fiat,omitempty"`
}
