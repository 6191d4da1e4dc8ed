package contract

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

func testKey(b byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{b}, ed25519.SeedSize))
}

func TestNewWalletV4Deterministic(t *testing.T) {
	key := testKey(7)

	a, err := NewWalletV4(key, DefaultMessageTTL)
	require.NoError(t, err)
	b, err := NewWalletV4(key, DefaultMessageTTL)
	require.NoError(t, err)

	assert.Equal(t, a.Address().String(), b.Address().String())
	assert.Equal(t, a.Address().Data(), b.Address().Data())
	assert.EqualValues(t, 0, a.Address().Workchain())
	assert.Equal(t, key.Public(), a.PublicKey())
}

func TestNewWalletV4MatchesWalletApps(t *testing.T) {
	seed := wallet.NewSeed()
	ref, err := wallet.FromSeed(nil, seed, wallet.V4R2)
	require.NoError(t, err)

	w, err := NewWalletV4(ref.PrivateKey(), DefaultMessageTTL)
	require.NoError(t, err)

	// same account as a v4r2 wallet restored from the phrase
	assert.True(t, w.Address().Equals(ref.WalletAddress()))
	assert.Equal(t, ref.WalletAddress().String(), w.Address().Bounce(false).String())

	pub := ref.PrivateKey().Public().(ed25519.PublicKey)
	expected, err := wallet.AddressFromPubKey(pub, wallet.V4R2, wallet.DefaultSubwallet)
	require.NoError(t, err)
	assert.Equal(t, expected.String(), w.Address().String())
}

func TestNewWalletV4DependsOnKey(t *testing.T) {
	a, err := NewWalletV4(testKey(1), 0)
	require.NoError(t, err)
	b, err := NewWalletV4(testKey(2), 0)
	require.NoError(t, err)

	assert.NotEqual(t, a.Address().String(), b.Address().String())
}

func TestNewWalletV4RejectsBadKey(t *testing.T) {
	_, err := NewWalletV4(ed25519.PrivateKey{1, 2, 3}, DefaultMessageTTL)
	assert.Error(t, err)
}

func TestBuildTransferSignsSeqno(t *testing.T) {
	key := testKey(9)
	pub := key.Public().(ed25519.PublicKey)

	w, err := NewWalletV4(key, DefaultMessageTTL)
	require.NoError(t, err)

	destWallet, err := NewWalletV4(testKey(3), DefaultMessageTTL)
	require.NoError(t, err)

	msg, err := NewTransferMessage(destWallet.Address(), tlb.MustFromTON("0.01"), "hello", false)
	require.NoError(t, err)
	assert.False(t, msg.Bounce)
	assert.Equal(t, "0.01", msg.Amount.String())

	before := time.Now()
	ext, err := w.BuildTransfer(context.Background(), 5, false, msg)
	require.NoError(t, err)
	assert.Nil(t, ext.StateInit)
	assert.Equal(t, w.Address().String(), ext.DstAddr.String())

	body := ext.Body.BeginParse()
	signature, err := body.LoadSlice(512)
	require.NoError(t, err)

	payload, err := body.ToCell()
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(pub, payload.Hash(), signature), "signature must cover the payload")

	parsed := payload.BeginParse()
	subwallet, err := parsed.LoadUInt(32)
	require.NoError(t, err)
	until, err := parsed.LoadUInt(32)
	require.NoError(t, err)
	seqno, err := parsed.LoadUInt(32)
	require.NoError(t, err)
	op, err := parsed.LoadUInt(8)
	require.NoError(t, err)
	mode, err := parsed.LoadUInt(8)
	require.NoError(t, err)

	assert.EqualValues(t, wallet.DefaultSubwallet, subwallet)
	assert.InDelta(t, before.Add(DefaultMessageTTL).Unix(), int64(until), 5)
	assert.EqualValues(t, 5, seqno)
	assert.Zero(t, op)
	assert.EqualValues(t, SendModePayFeesSeparately+SendModeIgnoreErrors, mode)

	ref, err := parsed.LoadRef()
	require.NoError(t, err)
	var sent tlb.InternalMessage
	require.NoError(t, tlb.LoadFromCell(&sent, ref))
	assert.Equal(t, destWallet.Address().String(), sent.DstAddr.String())
	assert.Equal(t, "0.01", sent.Amount.String())
}

func TestBuildTransferUsesLatestSeqno(t *testing.T) {
	key := testKey(6)
	w, err := NewWalletV4(key, DefaultMessageTTL)
	require.NoError(t, err)

	for _, want := range []uint32{3, 4} {
		ext, err := w.BuildTransfer(context.Background(), want, false)
		require.NoError(t, err)

		body := ext.Body.BeginParse()
		_, err = body.LoadSlice(512 + 32 + 32)
		require.NoError(t, err)
		seqno, err := body.LoadUInt(32)
		require.NoError(t, err)
		assert.EqualValues(t, want, seqno)
	}
}

func TestBuildTransferAttachesStateInit(t *testing.T) {
	w, err := NewWalletV4(testKey(4), DefaultMessageTTL)
	require.NoError(t, err)

	ext, err := w.BuildTransfer(context.Background(), 0, true)
	require.NoError(t, err)
	require.NotNil(t, ext.StateInit)

	want, err := w.StateInit()
	require.NoError(t, err)
	got, err := tlb.ToCell(ext.StateInit)
	require.NoError(t, err)
	wantCell, err := tlb.ToCell(want)
	require.NoError(t, err)
	assert.Equal(t, wantCell.Hash(), got.Hash())
	assert.Equal(t, w.Address().Data(), got.Hash(), "address is the state init hash")
}

func TestBuildTransferLimitsMessages(t *testing.T) {
	w, err := NewWalletV4(testKey(5), DefaultMessageTTL)
	require.NoError(t, err)

	dest := address.NewAddress(0, 0, bytes.Repeat([]byte{1}, 32))
	msg, err := NewTransferMessage(dest, tlb.MustFromTON("1"), "", true)
	require.NoError(t, err)

	_, err = w.BuildTransfer(context.Background(), 1, false, msg, msg, msg, msg, msg)
	assert.ErrorIs(t, err, ErrTooManyMessages)
}
