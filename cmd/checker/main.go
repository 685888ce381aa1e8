package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blockfrost_proxy/internal/app/provider"
	"blockfrost_proxy/internal/app/service"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/infrastructure/configloader"
	clientprovider "blockfrost_proxy/internal/infrastructure/network/client"
	networkdefinition "blockfrost_proxy/internal/infrastructure/network/definition"
	"blockfrost_proxy/internal/pkg/logger"
	"blockfrost_proxy/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", utils.GetEnv("CHECKER_CONFIG_PATH", configloader.DefaultPath), "path to the checker config")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Не удалось загрузить конфигурацию %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to initialize zapLogger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InitSlog(zapLogger)

	// Для частей, которые ожидают port.Logger
	appLogger := logger.NewSlogAdapter()

	network, _ := cfg.Network() // проверено в configloader.Load
	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, []string{network.String()})
	def, ok := netDefProvider.GetNetworkDefinition(network)
	if !ok {
		logger.Fatal("Сеть не найдена", "network", network)
	}

	addressProvider := provider.NewAddressProvider(cfg.AddressesFile, def, appLogger)
	assetProvider := provider.NewAssetProvider(cfg.AssetsDir, network, appLogger)
	clientProvider := clientprovider.NewBlockfrostClientProvider(
		cfg.Proxy.Endpoint,
		time.Duration(cfg.Proxy.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)

	balanceService := service.NewBalanceService(addressProvider, clientProvider, appLogger, service.BalanceServiceConfig{
		MaxConcurrentRoutines: cfg.Performance.MaxConcurrentRoutines,
		RequestsPerSecond:     cfg.Performance.RequestsPerSecond,
		Burst:                 cfg.Performance.Burst,
		CacheTTL:              time.Duration(cfg.Performance.CacheTTLMinutes) * time.Minute,
		Pages:                 cfg.PageOptions(),
		Assets:                assetProvider,
	})

	report := entity.BalanceReport{Network: network}

	api, err := clientProvider.GetClient(network)
	if err != nil {
		logger.Fatal("Не удалось создать клиент", "network", network, "error", err)
	}
	if tip, err := api.BlocksLatest(ctx); err != nil {
		logger.Warn("Не удалось получить последний блок", "error", err)
	} else {
		report.TipHeight = tip.Height
		report.TipHash = tip.Hash
	}

	report.Balances, report.Errors = balanceService.FetchAllBalances(ctx, network)
	report.GeneratedAt = time.Now().Unix()

	zapLogger.Info("Проверка балансов завершена",
		zap.String("network", network.String()),
		zap.Int("balances", len(report.Balances)),
		zap.Int("errors", len(report.Errors)),
		zap.Strings("failed", balanceService.GetFailedAddresses()),
	)

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Fatal("Не удалось записать отчет", "error", err)
	}
	if len(report.Errors) > 0 {
		_ = zapLogger.Sync()
		os.Exit(2)
	}
}
