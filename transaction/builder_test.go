package transaction

import (
	"bytes"
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/canopy-network/swap/codec"
	"github.com/canopy-network/swap/curve"
	"github.com/canopy-network/swap/errors"
	"github.com/canopy-network/swap/jsonx"
	"github.com/canopy-network/swap/keyvault"
	"github.com/canopy-network/swap/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "correct-password"
	keyAddress   = "0505050505050505050505050505050505050505"
	receiveAddr  = "0303030303030303030303030303030303030303"
	orderID      = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

var (
	fastParams = keyvault.Params{Time: 1, MemoryKiB: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
	fixedNow   = time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)
)

type fixture struct {
	builder *Builder
	keyfile *keyvault.Keyfile
	pub     []byte
	signer  curve.Signer
}

func newFixture(t *testing.T, typ curve.Type) fixture {
	t.Helper()
	signer, err := curve.SignerFor(typ)
	require.NoError(t, err)
	priv, pub, err := signer.GenerateKey(nil)
	require.NoError(t, err)

	vault := keyvault.New(fastParams, nil)
	kf, err := vault.Encrypt(context.Background(), priv, pub, testPassword, keyAddress)
	require.NoError(t, err)

	return fixture{
		builder: NewBuilder(vault).WithClock(func() time.Time { return fixedNow }),
		keyfile: kf,
		pub:     pub,
		signer:  signer,
	}
}

func defaultNetwork() NetworkParams {
	return NetworkParams{NetworkID: 1, ChainID: 1, Height: 500, Fee: 10000}
}

func createOrderMessage(t *testing.T) *types.MessageCreateOrder {
	t.Helper()
	msg, err := NewCreateOrder(CreateOrderParams{
		ChainID:              1,
		AmountForSale:        100,
		RequestedAmount:      50,
		SellerReceiveAddress: receiveAddr,
	})
	require.NoError(t, err)
	return msg
}

func TestBuildCreateOrderED25519(t *testing.T) {
	f := newFixture(t, curve.ED25519)

	signed, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile:  f.keyfile,
		Password: testPassword,
		Message:  createOrderMessage(t),
		Network:  defaultNetwork(),
	})
	require.NoError(t, err)

	assert.Equal(t, f.keyfile.PublicKey, signed.Signature.PublicKey.String())
	assert.Len(t, signed.Signature.Signature.String(), 128)

	assert.Equal(t, types.MessageTypeCreateOrder, signed.Type)
	assert.Equal(t, uint64(fixedNow.UnixMicro()), signed.Time)
	assert.Equal(t, uint64(500), signed.CreatedHeight)
	assert.Equal(t, uint64(10000), signed.Fee)
	assert.Equal(t, uint64(1), signed.NetworkID)
	assert.Equal(t, uint64(1), signed.ChainID)

	msg := signed.Msg.(*types.MessageCreateOrder)
	assert.Empty(t, msg.OrderID, "order id is assigned by the ledger")
	assert.Equal(t, keyAddress, msg.SellerSendAddress.String(), "seller send address defaults to the keyfile address")

	signBytes, err := codec.CanonicalBytes(&signed.UnsignedTransaction)
	require.NoError(t, err)
	assert.True(t, f.signer.Verify(f.pub, signBytes, signed.Signature.Signature))
}

func TestBuildBLS(t *testing.T) {
	f := newFixture(t, curve.BLS12381)
	msg, err := NewDeleteOrder(DeleteOrderParams{OrderID: orderID, ChainID: 1})
	require.NoError(t, err)

	signed, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile:  f.keyfile,
		Password: testPassword,
		Message:  msg,
		Network:  defaultNetwork(),
	})
	require.NoError(t, err)

	assert.Len(t, f.keyfile.PublicKey, 96)
	assert.Len(t, signed.Signature.Signature.String(), 192)

	signBytes, err := codec.CanonicalBytes(&signed.UnsignedTransaction)
	require.NoError(t, err)
	assert.True(t, f.signer.Verify(f.pub, signBytes, signed.Signature.Signature))
}

func TestBuildDeleteOrderOmitsOrderTerms(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	msg, err := NewDeleteOrder(DeleteOrderParams{OrderID: orderID, ChainID: 1})
	require.NoError(t, err)

	signed, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile:  f.keyfile,
		Password: testPassword,
		Message:  msg,
		Network:  defaultNetwork(),
	})
	require.NoError(t, err)

	_, value, err := codec.MessageBytes(signed.Type, signed.Msg)
	require.NoError(t, err)
	assert.Equal(t, "0a14"+orderID+"1001", hex.EncodeToString(value))
}

func TestBuildSendAndEdit(t *testing.T) {
	f := newFixture(t, curve.ED25519)

	send, err := NewSend(SendParams{ToAddress: receiveAddr, Amount: 42})
	require.NoError(t, err)
	edit, err := NewEditOrder(EditOrderParams{
		OrderID:              orderID,
		ChainID:              1,
		Data:                 "beef",
		AmountForSale:        200,
		RequestedAmount:      75,
		SellerReceiveAddress: receiveAddr,
	})
	require.NoError(t, err)

	for _, msg := range []types.Message{send, edit} {
		signed, err := f.builder.BuildAndSign(context.Background(), Request{
			Keyfile:  f.keyfile,
			Password: testPassword,
			Message:  msg,
			Network:  defaultNetwork(),
			Memo:     "via swap",
		})
		require.NoError(t, err, msg.MessageType())
		assert.Equal(t, msg.MessageType(), signed.Type)
		assert.Equal(t, "via swap", signed.Memo)
	}
	assert.Empty(t, send.FromAddress, "caller's message is not modified")
}

func TestBuildValidationBoundaries(t *testing.T) {
	f := newFixture(t, curve.ED25519)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "negative fee", mutate: func(r *Request) { r.Network.Fee = -1 }},
		{name: "zero network id", mutate: func(r *Request) { r.Network.NetworkID = 0 }},
		{name: "zero chain id", mutate: func(r *Request) { r.Network.ChainID = 0 }},
		{name: "negative height", mutate: func(r *Request) { r.Network.Height = -1 }},
		{name: "memo of 201 characters", mutate: func(r *Request) { r.Memo = strings.Repeat("m", 201) }},
		{name: "nil message", mutate: func(r *Request) { r.Message = nil }},
		{name: "typed nil message", mutate: func(r *Request) { r.Message = (*types.MessageEditOrder)(nil) }},
		{name: "unknown message type", mutate: func(r *Request) { r.Message = unknownMessage{} }},
		{name: "zero amount for sale", mutate: func(r *Request) {
			m := createOrderMessage(t)
			m.AmountForSale = 0
			r.Message = m
		}},
		{name: "order id set on create", mutate: func(r *Request) {
			m := createOrderMessage(t)
			m.OrderID = types.HexBytes{0x01}
			r.Message = m
		}},
		{name: "delete without order id", mutate: func(r *Request) { r.Message = &types.MessageDeleteOrder{ChainID: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// a wrong password proves validation runs before decryption
			req := Request{
				Keyfile:  f.keyfile,
				Password: "wrong-password",
				Message:  createOrderMessage(t),
				Network:  defaultNetwork(),
			}
			tt.mutate(&req)

			signed, err := f.builder.BuildAndSign(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, signed)
			assert.ErrorIs(t, err, errors.ErrInvalidParameter)
		})
	}
}

func TestBuildBoundaryValuesAccepted(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	signed, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile:  f.keyfile,
		Password: testPassword,
		Message:  createOrderMessage(t),
		Network:  NetworkParams{NetworkID: 1, ChainID: 1, Height: 0, Fee: 0},
		Memo:     strings.Repeat("m", 200),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), signed.Fee)
}

func TestBuildWrongPassword(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	_, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile:  f.keyfile,
		Password: "wrong-password",
		Message:  createOrderMessage(t),
		Network:  defaultNetwork(),
	})
	assert.ErrorIs(t, err, errors.ErrInvalidPassword)
}

func TestBuildCorruptedKeyfile(t *testing.T) {
	f := newFixture(t, curve.ED25519)

	kf := *f.keyfile
	kf.PublicKey = "zz" + kf.PublicKey[2:]
	_, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile: &kf, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	assert.ErrorIs(t, err, errors.ErrCorruptedKeyfile)

	kf = *f.keyfile
	kf.KeyAddress = "not-hex"
	_, err = f.builder.BuildAndSign(context.Background(), Request{
		Keyfile: &kf, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	assert.ErrorIs(t, err, errors.ErrCorruptedKeyfile)

	_, err = f.builder.BuildAndSign(context.Background(), Request{
		Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	assert.ErrorIs(t, err, errors.ErrCorruptedKeyfile)
}

func TestBuildUnsupportedCurve(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	kf := *f.keyfile
	kf.PublicKey = strings.Repeat("ab", 33)

	_, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile: &kf, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	assert.ErrorIs(t, err, errors.ErrSigningFailure)
}

func TestBuildKeyPairMismatch(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	other := newFixture(t, curve.ED25519)

	// ciphertext of one wallet presented with the public key of another
	kf := *f.keyfile
	kf.PublicKey = other.keyfile.PublicKey

	_, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile: &kf, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSigningFailure)
}

func TestBuildWipesKeyOnAllPaths(t *testing.T) {
	f := newFixture(t, curve.ED25519)

	var seen keyvault.Secret
	b := f.builder.WithClock(func() time.Time { return fixedNow })
	b.onSecret = func(s keyvault.Secret) { seen = s }

	_, err := b.BuildAndSign(context.Background(), Request{
		Keyfile: f.keyfile, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, make([]byte, len(seen)), []byte(seen), "success path")

	other := newFixture(t, curve.ED25519)
	kf := *f.keyfile
	kf.PublicKey = other.keyfile.PublicKey
	seen = nil
	_, err = b.BuildAndSign(context.Background(), Request{
		Keyfile: &kf, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	require.Error(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, make([]byte, len(seen)), []byte(seen), "failure path")
}

func TestBuildCancelled(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.builder.BuildAndSign(ctx, Request{
		Keyfile: f.keyfile, Password: testPassword, Message: createOrderMessage(t), Network: defaultNetwork(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPayloadJSON(t *testing.T) {
	f := newFixture(t, curve.ED25519)
	msg, err := NewDeleteOrder(DeleteOrderParams{OrderID: orderID, ChainID: 1})
	require.NoError(t, err)

	signed, err := f.builder.BuildAndSign(context.Background(), Request{
		Keyfile: f.keyfile, Password: testPassword, Message: msg, Network: defaultNetwork(),
	})
	require.NoError(t, err)

	raw, err := jsonx.Marshal(signed.Payload())
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, jsonx.Unmarshal(raw, &decoded))
	tx := decoded["raw_transaction"]
	require.NotNil(t, tx)

	assert.Equal(t, "deleteOrder", tx["type"])
	assert.Equal(t, float64(500), tx["createdHeight"])
	assert.Equal(t, float64(10000), tx["fee"])
	assert.Equal(t, float64(1), tx["networkID"])
	assert.Equal(t, float64(1), tx["chainID"])
	assert.Equal(t, map[string]interface{}{"orderId": orderID, "chainId": float64(1)}, tx["msg"])

	sig := tx["signature"].(map[string]interface{})
	assert.Equal(t, f.keyfile.PublicKey, sig["publicKey"])
	assert.Len(t, sig["signature"], 128)
}

func TestMessageConstructorsRejectBadHex(t *testing.T) {
	_, err := NewSend(SendParams{ToAddress: "xyz"})
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
	_, err = NewCreateOrder(CreateOrderParams{Data: "0"})
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
	_, err = NewEditOrder(EditOrderParams{OrderID: "q"})
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
	_, err = NewDeleteOrder(DeleteOrderParams{OrderID: "0x12"})
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
}

func TestConcurrentBuilds(t *testing.T) {
	a := newFixture(t, curve.ED25519)
	b := newFixture(t, curve.BLS12381)

	type result struct {
		signed *types.SignedTransaction
		err    error
	}
	msg := createOrderMessage(t)
	results := make(chan result, 4)
	for _, f := range []fixture{a, b, a, b} {
		go func(f fixture) {
			signed, err := f.builder.BuildAndSign(context.Background(), Request{
				Keyfile: f.keyfile, Password: testPassword, Message: msg, Network: defaultNetwork(),
			})
			results <- result{signed, err}
		}(f)
	}
	for i := 0; i < 4; i++ {
		r := <-results
		require.NoError(t, r.err)
		assert.True(t, bytes.Equal(r.signed.Signature.PublicKey, a.pub) || bytes.Equal(r.signed.Signature.PublicKey, b.pub))
	}
}

type unknownMessage struct{}

func (unknownMessage) MessageType() string { return "stake" }
func (unknownMessage) Check() error        { return nil }
