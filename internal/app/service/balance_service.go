package service

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/utils"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const lovelaceUnit = "lovelace"

// BalanceServiceConfig holds the tuning of BalanceServiceImpl.
type BalanceServiceConfig struct {
	MaxConcurrentRoutines int
	RequestsPerSecond     float64            // <= 0 disables pacing
	Burst                 int
	CacheTTL              time.Duration      // <= 0 disables caching
	Pages                 *entity.AllPagesOptions
	Assets                port.AssetProvider // optional, labels known native assets
}

// BalanceServiceImpl implements port.BalanceService.
type BalanceServiceImpl struct {
	addressProvider       port.AddressProvider
	clientProvider        port.BlockfrostClientProvider
	assetProvider         port.AssetProvider
	logger                port.Logger
	limiter               *rate.Limiter
	results               *cache.Cache
	pages                 *entity.AllPagesOptions
	maxConcurrentRoutines int
	failedAddresses       map[string]bool
	mu                    sync.Mutex
}

// NewBalanceService creates a new instance of BalanceServiceImpl.
func NewBalanceService(
	ap port.AddressProvider,
	cp port.BlockfrostClientProvider,
	l port.Logger,
	cfg BalanceServiceConfig,
) *BalanceServiceImpl {
	if cfg.MaxConcurrentRoutines <= 0 {
		cfg.MaxConcurrentRoutines = 1
	}
	s := &BalanceServiceImpl{
		addressProvider:       ap,
		clientProvider:        cp,
		assetProvider:         cfg.Assets,
		logger:                l,
		pages:                 cfg.Pages,
		maxConcurrentRoutines: cfg.MaxConcurrentRoutines,
		failedAddresses:       make(map[string]bool),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	if cfg.CacheTTL > 0 {
		s.results = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

var _ port.BalanceService = (*BalanceServiceImpl)(nil)

// FetchAllBalances fetches balances of every address from the AddressProvider.
// Ошибка одного адреса не прерывает обработку остальных.
func (s *BalanceServiceImpl) FetchAllBalances(ctx context.Context, network entity.Network) ([]entity.AddressBalance, []entity.BalanceError) {
	addresses, err := s.addressProvider.GetAddresses()
	if err != nil {
		s.logger.Error("Failed to get addresses", "error", err)
		return nil, []entity.BalanceError{{Network: network, Message: fmt.Sprintf("failed to load addresses: %v", err)}}
	}
	if len(addresses) == 0 {
		s.logger.Warn("No addresses to process", "network", network)
		return []entity.AddressBalance{}, nil
	}

	balances := make([]*entity.AddressBalance, len(addresses))
	failures := make([]*entity.BalanceError, len(addresses))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrentRoutines)
	for i, a := range addresses {
		g.Go(func() error {
			bal, err := s.FetchAddressBalance(ctx, network, a.Address)
			if err != nil {
				s.logger.Warn("Failed to fetch address balance", "address", a.Address, "error", err)
				failures[i] = &entity.BalanceError{Address: a.Address, Network: network, Message: err.Error()}
				return nil
			}
			balances[i] = &bal
			return nil
		})
	}
	_ = g.Wait()

	out := make([]entity.AddressBalance, 0, len(addresses))
	var errs []entity.BalanceError
	for i := range addresses {
		if balances[i] != nil {
			out = append(out, *balances[i])
		}
		if failures[i] != nil {
			errs = append(errs, *failures[i])
		}
	}

	s.logger.Info("Fetched address balances", "network", network, "ok", len(out), "failed", len(errs))
	return out, errs
}

// FetchAddressBalance walks every UTXO page of an address and sums the amounts per unit.
func (s *BalanceServiceImpl) FetchAddressBalance(ctx context.Context, network entity.Network, address string) (entity.AddressBalance, error) {
	cacheKey := network.String() + ":" + address
	if s.results != nil {
		if v, ok := s.results.Get(cacheKey); ok {
			return v.(entity.AddressBalance), nil
		}
	}

	client, err := s.clientProvider.GetClient(network)
	if err != nil {
		s.markFailed(address, true)
		return entity.AddressBalance{}, err
	}

	fetch := func(ctx context.Context, p entity.Pagination) ([]entity.AddressUTXO, error) {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		return client.AddressesUtxos(ctx, address, &p)
	}

	acc := newBalanceAccumulator()
	for page, err := range utils.Pages(ctx, fetch, s.pages) {
		if err != nil {
			s.markFailed(address, true)
			return entity.AddressBalance{}, fmt.Errorf("failed to list UTXOs of %s: %w", address, err)
		}
		if err := acc.add(page); err != nil {
			s.markFailed(address, true)
			return entity.AddressBalance{}, err
		}
	}

	bal := acc.balance(network, address)
	bal.Tokens = s.labelTokens(acc.assets)
	if s.results != nil {
		s.results.SetDefault(cacheKey, bal)
	}
	s.markFailed(address, false)
	return bal, nil
}

// GetFailedAddresses returns the addresses whose last fetch failed, sorted.
func (s *BalanceServiceImpl) GetFailedAddresses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.failedAddresses))
	for a := range s.failedAddresses {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func (s *BalanceServiceImpl) markFailed(address string, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if failed {
		s.failedAddresses[address] = true
	} else {
		delete(s.failedAddresses, address)
	}
}

// labelTokens formats the quantities of registry assets; unknown units stay in Assets only.
func (s *BalanceServiceImpl) labelTokens(totals map[string]*big.Int) []entity.TokenBalance {
	if s.assetProvider == nil || len(totals) == 0 {
		return nil
	}
	registry, err := s.assetProvider.GetAssets()
	if err != nil {
		s.logger.Warn("Asset registry unavailable, tokens left unlabelled", "error", err)
		return nil
	}
	var tokens []entity.TokenBalance
	for unit, q := range totals {
		info, ok := registry[unit]
		if !ok {
			continue
		}
		tokens = append(tokens, entity.TokenBalance{
			Unit:      unit,
			Ticker:    info.Ticker,
			Quantity:  q.String(),
			Formatted: utils.FormatBigInt(q, info.Decimals),
		})
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Ticker < tokens[j].Ticker })
	return tokens
}

type balanceAccumulator struct {
	lovelace *big.Int
	assets   map[string]*big.Int
	utxos    int
}

func newBalanceAccumulator() *balanceAccumulator {
	return &balanceAccumulator{lovelace: new(big.Int), assets: make(map[string]*big.Int)}
}

func (a *balanceAccumulator) add(utxos []entity.AddressUTXO) error {
	for _, u := range utxos {
		for _, amount := range u.Amount {
			q, err := utils.ParseQuantity(amount.Quantity)
			if err != nil {
				return fmt.Errorf("utxo %s#%d: %w", u.TxHash, u.OutputIndex, err)
			}
			if amount.Unit == lovelaceUnit {
				a.lovelace.Add(a.lovelace, q)
				continue
			}
			total, ok := a.assets[amount.Unit]
			if !ok {
				total = new(big.Int)
				a.assets[amount.Unit] = total
			}
			total.Add(total, q)
		}
	}
	a.utxos += len(utxos)
	return nil
}

func (a *balanceAccumulator) balance(network entity.Network, address string) entity.AddressBalance {
	bal := entity.AddressBalance{
		Address:   address,
		Network:   network,
		Lovelace:  a.lovelace.String(),
		ADA:       utils.FormatBigInt(a.lovelace, utils.LovelaceDecimals),
		UTXOCount: a.utxos,
	}
	if len(a.assets) > 0 {
		bal.Assets = make(map[string]string, len(a.assets))
		for unit, q := range a.assets {
			bal.Assets[unit] = q.String()
		}
	}
	return bal
}
