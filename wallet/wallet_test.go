package wallet

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/ton-wallet/internal/client"
	"github.com/AlexZinkM/ton-wallet/internal/crypto"
	"github.com/AlexZinkM/ton-wallet/internal/model"
	"github.com/AlexZinkM/ton-wallet/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

var errRPC = errors.New("rpc down")

type fakeAccount struct {
	network  client.Network
	addr     *address.Address
	balance  tlb.Coins
	deployed bool
	seqno    uint32

	balanceErr error

	transfers []session.TransferRequest
	conf      *session.Confirmation
	transErr  error
}

func newFakeAccount() *fakeAccount {
	return &fakeAccount{
		network:  client.Testnet,
		addr:     address.NewAddress(0, 0, bytes.Repeat([]byte{7}, 32)),
		balance:  tlb.MustFromTON("2"),
		deployed: true,
		seqno:    11,
		conf:     &session.Confirmation{Outcome: session.OutcomeConfirmed, Baseline: 11, Seqno: 12, Polls: 1},
	}
}

func (f *fakeAccount) Network() (client.Network, error) { return f.network, nil }

func (f *fakeAccount) Address() (*address.Address, error) { return f.addr, nil }

func (f *fakeAccount) BalanceCoins(context.Context) (tlb.Coins, error) {
	return f.balance, f.balanceErr
}

func (f *fakeAccount) IsDeployed(context.Context) (bool, error) { return f.deployed, nil }

func (f *fakeAccount) Seqno(context.Context) (uint32, error) { return f.seqno, nil }

func (f *fakeAccount) Transfer(_ context.Context, req session.TransferRequest) (*session.Confirmation, error) {
	f.transfers = append(f.transfers, req)
	return f.conf, f.transErr
}

type fakeRates struct {
	rate string
	err  error
	cur  string
}

func (r *fakeRates) GetTONRate(currency string) (string, error) {
	r.cur = currency
	return r.rate, r.err
}

func destination() string {
	return address.NewAddress(0, 0, bytes.Repeat([]byte{9}, 32)).String()
}

func TestGetBalance(t *testing.T) {
	acc := newFakeAccount()
	acc.balance = tlb.MustFromTON("1.25")

	resp, err := GetBalance(context.Background(), acc, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "1.250000000", resp.TON)
	assert.Equal(t, "testnet", resp.Network)
	assert.True(t, resp.Deployed)
	assert.EqualValues(t, 11, resp.Seqno)
	assert.Empty(t, resp.Fiat)
	assert.NotEqual(t, acc.addr.String(), resp.Address, "testnet addresses carry the testnet flag")

	rates := &fakeRates{rate: "5.40"}
	resp, err = GetBalance(context.Background(), acc, rates, "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", rates.cur)
	assert.Equal(t, "usd", resp.Currency)
	assert.Equal(t, "5.40", resp.Rate)
	assert.Equal(t, "6.75", resp.Fiat)
}

func TestGetBalanceErrors(t *testing.T) {
	acc := newFakeAccount()
	_, err := GetBalance(context.Background(), acc, &fakeRates{err: errRPC}, "usd")
	assert.ErrorIs(t, err, errRPC)

	_, err = GetBalance(context.Background(), acc, &fakeRates{rate: "n/a"}, "usd")
	assert.Error(t, err)

	acc.balanceErr = errRPC
	_, err = GetBalance(context.Background(), acc, nil, "")
	assert.ErrorIs(t, err, errRPC)
}

func TestPay(t *testing.T) {
	acc := newFakeAccount()
	cd := NewCooldown(time.Minute)

	resp, err := Pay(context.Background(), acc, cd, &model.PayRequest{
		ToAddress: " " + destination() + " ",
		Amount:    "0.01",
		Comment:   "thanks",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "confirmed", resp.Outcome)
	assert.Equal(t, "0.010000000", resp.Amount)
	assert.Equal(t, destination(), resp.To)
	assert.EqualValues(t, 11, resp.Baseline)
	assert.EqualValues(t, 12, resp.Seqno)
	assert.Equal(t, 1, resp.Polls)

	require.Len(t, acc.transfers, 1)
	sent := acc.transfers[0]
	assert.Equal(t, destination(), sent.Destination)
	assert.Equal(t, "10000000", sent.Amount.Nano().String())
	assert.Equal(t, "thanks", sent.Comment)
}

func TestPayValidation(t *testing.T) {
	acc := newFakeAccount()
	cd := NewCooldown(0)

	for _, req := range []*model.PayRequest{
		{ToAddress: "", Amount: "1"},
		{ToAddress: "garbage", Amount: "1"},
		{ToAddress: destination(), Amount: "0"},
		{ToAddress: destination(), Amount: "-1"},
		{ToAddress: destination(), Amount: "lots"},
	} {
		_, err := Pay(context.Background(), acc, cd, req)
		assert.True(t, IsValidationError(err), "%+v", req)
	}
	assert.Empty(t, acc.transfers)
}

func TestPayInsufficientBalance(t *testing.T) {
	acc := newFakeAccount()
	acc.balance = tlb.MustFromTON("1")

	_, err := Pay(context.Background(), acc, NewCooldown(0), &model.PayRequest{ToAddress: destination(), Amount: "0.98"})
	require.True(t, IsInsufficientBalanceError(err))
	assert.Contains(t, err.Error(), "Max you can send: 0.950000000 TON")
	assert.Empty(t, acc.transfers)
}

func TestPayAmountNearUint64Max(t *testing.T) {
	acc := newFakeAccount()

	// amount plus fee reserve does not fit into uint64
	_, err := Pay(context.Background(), acc, NewCooldown(0), &model.PayRequest{ToAddress: destination(), Amount: "18446744073.709551615"})
	require.True(t, IsInsufficientBalanceError(err), "got %v", err)
	assert.Contains(t, err.Error(), "Max you can send: 1.950000000 TON")
	assert.Empty(t, acc.transfers)
}

func TestPayCooldown(t *testing.T) {
	acc := newFakeAccount()
	now := time.Unix(1_700_000_000, 0)
	cd := NewCooldown(4 * time.Minute)
	cd.now = func() time.Time { return now }

	req := &model.PayRequest{ToAddress: destination(), Amount: "0.1"}
	_, err := Pay(context.Background(), acc, cd, req)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = Pay(context.Background(), acc, cd, req)
	require.True(t, IsCooldownError(err))
	assert.Equal(t, "cooldown active, please wait 3m0s", err.Error())

	now = now.Add(3 * time.Minute)
	_, err = Pay(context.Background(), acc, cd, req)
	require.NoError(t, err)
	assert.Len(t, acc.transfers, 2)
}

func TestPayUnconfirmedStartsCooldown(t *testing.T) {
	acc := newFakeAccount()
	acc.conf = &session.Confirmation{Outcome: session.OutcomeTimedOut, Baseline: 11, Seqno: 11, Polls: 120}
	acc.transErr = session.ErrConfirmationTimeout
	cd := NewCooldown(time.Hour)

	resp, err := Pay(context.Background(), acc, cd, &model.PayRequest{ToAddress: destination(), Amount: "0.1"})
	assert.ErrorIs(t, err, session.ErrConfirmationTimeout)
	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "timed_out", resp.Outcome)

	_, err = Pay(context.Background(), acc, cd, &model.PayRequest{ToAddress: destination(), Amount: "0.1"})
	assert.True(t, IsCooldownError(err))
}

func TestPaySubmissionFailure(t *testing.T) {
	acc := newFakeAccount()
	acc.conf = nil
	acc.transErr = &session.NetworkError{Op: "send transfer", Err: errRPC}
	cd := NewCooldown(time.Hour)

	resp, err := Pay(context.Background(), acc, cd, &model.PayRequest{ToAddress: destination(), Amount: "0.1"})
	assert.Nil(t, resp)
	assert.True(t, session.IsNetworkError(err))

	acc.transErr = nil
	acc.conf = &session.Confirmation{Outcome: session.OutcomeConfirmed, Baseline: 1, Seqno: 2}
	_, err = Pay(context.Background(), acc, cd, &model.PayRequest{ToAddress: destination(), Amount: "0.1"})
	assert.NoError(t, err, "failed submission must not start the cooldown")
}

func TestGenerateWalletRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := GenerateWallet(filepath.Join(dir, "wallet.json"), []byte("pw"), client.Testnet, 24)
	assert.Error(t, err)

	_, err = GenerateWallet(filepath.Join(dir, "wallet.cwt"), nil, client.Testnet, 24)
	assert.Error(t, err)

	existing := filepath.Join(dir, "existing.cwt")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0600))
	_, err = GenerateWallet(existing, []byte("pw"), client.Testnet, 24)
	assert.True(t, IsFileExistsError(err))
}

func TestGenerateWallet(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt keystore encryption is slow")
	}

	path := filepath.Join(t.TempDir(), "wallet.cwt")
	addr, err := GenerateWallet(path, []byte("pw"), client.Testnet, 24)
	require.NoError(t, err)

	stored, err := crypto.ReadWalletAddress(path)
	require.NoError(t, err)
	assert.Equal(t, addr, stored)

	phrase, err := crypto.ReadMnemonic(path, []byte("pw"))
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), 24)

	s := session.New(session.Config{Network: "testnet", Mnemonic: phrase})
	derived, err := s.Address()
	require.NoError(t, err)

	parsed, err := address.ParseAddr(addr)
	require.NoError(t, err)
	assert.Equal(t, derived.Data(), parsed.Data())
	assert.True(t, parsed.IsTestnetOnly())
	assert.False(t, parsed.IsBounceable())
}
