package service

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var ignoreJanitor = goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run")

// fakeAPI serves UTXO pages from memory; other methods are not used here.
type fakeAPI struct {
	port.BlockfrostAPI
	utxos    map[string][]entity.AddressUTXO
	failing  map[string]error
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeAPI) AddressesUtxos(ctx context.Context, address string, p *entity.Pagination) ([]entity.AddressUTXO, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.failing[address]; ok {
		return nil, err
	}
	all := f.utxos[address]
	start := (p.Page - 1) * p.Count
	if start >= len(all) {
		return []entity.AddressUTXO{}, nil
	}
	end := min(start+p.Count, len(all))
	return all[start:end], nil
}

type fakeProvider struct {
	api *fakeAPI
}

func (p fakeProvider) GetClient(network entity.Network) (port.BlockfrostAPI, error) {
	if network.ID() < 0 {
		return nil, entity.ErrUnsupportedNetwork
	}
	return p.api, nil
}

type staticAddresses struct {
	addresses []entity.Address
	err       error
}

func (s staticAddresses) GetAddresses() ([]entity.Address, error) {
	return s.addresses, s.err
}

func utxo(i int, amounts ...entity.Amount) entity.AddressUTXO {
	return entity.AddressUTXO{TxHash: "tx" + strconv.Itoa(i), OutputIndex: i, Amount: amounts}
}

func lovelace(q string) entity.Amount {
	return entity.Amount{Unit: "lovelace", Quantity: q}
}

func TestFetchAddressBalance_SumsAcrossPages(t *testing.T) {
	defer goleak.VerifyNone(t)

	var utxos []entity.AddressUTXO
	for i := 0; i < 250; i++ {
		utxos = append(utxos, utxo(i, lovelace("1000000"), entity.Amount{Unit: "policyTOKEN", Quantity: "2"}))
	}
	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{"addr_test1a": utxos}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{})

	bal, err := svc.FetchAddressBalance(context.Background(), entity.NetworkPreprod, "addr_test1a")
	require.NoError(t, err)
	assert.Equal(t, "250000000", bal.Lovelace)
	assert.Equal(t, "250", bal.ADA)
	assert.Equal(t, map[string]string{"policyTOKEN": "500"}, bal.Assets)
	assert.Equal(t, 250, bal.UTXOCount)
	assert.EqualValues(t, 3, api.calls.Load())
	assert.EqualValues(t, 1, api.maxSeen.Load())
}

func TestFetchAddressBalance_BigQuantities(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{
		"addr1big": {
			utxo(0, lovelace("18446744073709551615")),
			utxo(1, lovelace("1")),
			utxo(2, lovelace("123456")),
		},
	}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{})

	bal, err := svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1big")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709675072", bal.Lovelace)
	assert.Equal(t, "18446744073709.675072", bal.ADA)
	assert.Nil(t, bal.Assets)
}

func TestFetchAddressBalance_EmptyAddress(t *testing.T) {
	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{})

	bal, err := svc.FetchAddressBalance(context.Background(), entity.NetworkPreview, "addr_test1empty")
	require.NoError(t, err)
	assert.Equal(t, "0", bal.Lovelace)
	assert.Equal(t, "0", bal.ADA)
	assert.Zero(t, bal.UTXOCount)
}

func TestFetchAddressBalance_InvalidQuantity(t *testing.T) {
	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{
		"addr1x": {utxo(7, lovelace("-5"))},
	}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{})

	_, err := svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tx7#7")
	assert.Equal(t, []string{"addr1x"}, svc.GetFailedAddresses())
}

func TestFetchAllBalances_PartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := &fakeAPI{
		utxos: map[string][]entity.AddressUTXO{
			"addr1a": {utxo(0, lovelace("1500000"))},
			"addr1c": {utxo(0, lovelace("2"))},
		},
		failing: map[string]error{"addr1b": errors.New("upstream 500")},
	}
	addresses := staticAddresses{addresses: []entity.Address{{Address: "addr1a"}, {Address: "addr1b"}, {Address: "addr1c"}}}
	svc := NewBalanceService(addresses, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{MaxConcurrentRoutines: 2})

	balances, errs := svc.FetchAllBalances(context.Background(), entity.NetworkMainnet)
	require.Len(t, balances, 2)
	assert.Equal(t, "addr1a", balances[0].Address)
	assert.Equal(t, "1.5", balances[0].ADA)
	assert.Equal(t, "addr1c", balances[1].Address)
	assert.Equal(t, "0.000002", balances[1].ADA)

	require.Len(t, errs, 1)
	assert.Equal(t, "addr1b", errs[0].Address)
	assert.Contains(t, errs[0].Message, "upstream 500")
	assert.Equal(t, []string{"addr1b"}, svc.GetFailedAddresses())
}

func TestFetchAllBalances_ConcurrencyLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{}}
	var addresses []entity.Address
	for i := 0; i < 20; i++ {
		addresses = append(addresses, entity.Address{Address: "addr1n" + strconv.Itoa(i)})
	}
	svc := NewBalanceService(staticAddresses{addresses: addresses}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{MaxConcurrentRoutines: 3})

	balances, errs := svc.FetchAllBalances(context.Background(), entity.NetworkPreprod)
	assert.Len(t, balances, 20)
	assert.Empty(t, errs)
	assert.LessOrEqual(t, api.maxSeen.Load(), int32(3))
}

func TestFetchAllBalances_AddressLoadError(t *testing.T) {
	svc := NewBalanceService(staticAddresses{err: errors.New("no file")}, fakeProvider{&fakeAPI{}}, logger.NopLogger{}, BalanceServiceConfig{})

	balances, errs := svc.FetchAllBalances(context.Background(), entity.NetworkPreprod)
	assert.Nil(t, balances)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "no file")
}

func TestFetchAddressBalance_Cached(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreJanitor)

	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{"addr1a": {utxo(0, lovelace("1"))}}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1a")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, api.calls.Load())

	// другой сети соответствует другой ключ кэша
	_, err := svc.FetchAddressBalance(context.Background(), entity.NetworkPreprod, "addr1a")
	require.NoError(t, err)
	assert.EqualValues(t, 2, api.calls.Load())
}

func TestFetchAddressBalance_RateLimitedCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	var utxos []entity.AddressUTXO
	for i := 0; i < 500; i++ {
		utxos = append(utxos, utxo(i, lovelace("1")))
	}
	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{"addr1slow": utxos}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{RequestsPerSecond: 1, Burst: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := svc.FetchAddressBalance(ctx, entity.NetworkMainnet, "addr1slow")
	require.Error(t, err)
	assert.EqualValues(t, 1, api.calls.Load())
}

func TestFetchAddressBalance_UnknownNetwork(t *testing.T) {
	svc := NewBalanceService(staticAddresses{}, fakeProvider{&fakeAPI{}}, logger.NopLogger{}, BalanceServiceConfig{})
	_, err := svc.FetchAddressBalance(context.Background(), entity.Network("sanchonet"), "addr1")
	assert.ErrorIs(t, err, entity.ErrUnsupportedNetwork)
}

func TestGetFailedAddresses_ClearedOnSuccess(t *testing.T) {
	api := &fakeAPI{
		utxos:   map[string][]entity.AddressUTXO{"addr1a": {utxo(0, lovelace("1"))}},
		failing: map[string]error{"addr1a": errors.New("boom")},
	}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{})

	_, err := svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1a")
	require.Error(t, err)
	assert.Equal(t, []string{"addr1a"}, svc.GetFailedAddresses())

	delete(api.failing, "addr1a")

	_, err = svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1a")
	require.NoError(t, err)
	assert.Empty(t, svc.GetFailedAddresses())
}

type staticAssets struct {
	assets map[string]entity.AssetInfo
	err    error
}

func (s staticAssets) GetAssets() (map[string]entity.AssetInfo, error) {
	return s.assets, s.err
}

func TestFetchAddressBalance_LabelsRegistryTokens(t *testing.T) {
	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{
		"addr1t": {
			utxo(0, lovelace("2000000"), entity.Amount{Unit: "policyMIN", Quantity: "1500000"}),
			utxo(1, entity.Amount{Unit: "policyAGIX", Quantity: "250"}, entity.Amount{Unit: "policyUNKNOWN", Quantity: "7"}),
		},
	}}
	assets := staticAssets{assets: map[string]entity.AssetInfo{
		"policyMIN":  {Unit: "policyMIN", Ticker: "MIN", Decimals: 6},
		"policyAGIX": {Unit: "policyAGIX", Ticker: "AGIX", Decimals: 8},
	}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{}, BalanceServiceConfig{Assets: assets})

	bal, err := svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1t")
	require.NoError(t, err)
	assert.Len(t, bal.Assets, 3)
	assert.Equal(t, []entity.TokenBalance{
		{Unit: "policyAGIX", Ticker: "AGIX", Quantity: "250", Formatted: "0.0000025"},
		{Unit: "policyMIN", Ticker: "MIN", Quantity: "1500000", Formatted: "1.5"},
	}, bal.Tokens)
}

func TestFetchAddressBalance_RegistryErrorKeepsBalance(t *testing.T) {
	api := &fakeAPI{utxos: map[string][]entity.AddressUTXO{
		"addr1t": {utxo(0, lovelace("1"), entity.Amount{Unit: "policyMIN", Quantity: "1"})},
	}}
	svc := NewBalanceService(staticAddresses{}, fakeProvider{api}, logger.NopLogger{},
		BalanceServiceConfig{Assets: staticAssets{err: errors.New("broken registry")}})

	bal, err := svc.FetchAddressBalance(context.Background(), entity.NetworkMainnet, "addr1t")
	require.NoError(t, err)
	assert.Nil(t, bal.Tokens)
	assert.Equal(t, map[string]string{"policyMIN": "1"}, bal.Assets)
}
