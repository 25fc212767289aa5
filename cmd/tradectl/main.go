package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/evgenii/bitbar-trademan/internal/auth"
	"github.com/evgenii/bitbar-trademan/internal/config"
	"github.com/evgenii/bitbar-trademan/internal/exmo"
	"github.com/evgenii/bitbar-trademan/internal/model"
	"github.com/evgenii/bitbar-trademan/internal/trade"
	"github.com/evgenii/bitbar-trademan/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/trademan.yaml", "path to config file")
	pairArg := flag.String("pair", "", "currency pair, e.g. BTC_USD")
	sideArg := flag.String("side", "", "order side: market_buy or market_sell")
	valueArg := flag.String("value", "", "order value, e.g. \"0.0001 BTC\" or \"35USD\"")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *pairArg == "" || *sideArg == "" || *valueArg == "" {
		fmt.Fprintln(os.Stderr, "usage: tradectl -pair BTC_USD -side market_buy -value \"35 USD\"")
		os.Exit(2)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pair, err := model.ParsePair(*pairArg)
	if err != nil {
		logger.Error("invalid pair", "pair", *pairArg, "error", err)
		os.Exit(2)
	}

	side, err := model.ParseOrderSide(*sideArg)
	if err != nil {
		logger.Error("invalid side", "side", *sideArg, "error", err)
		os.Exit(2)
	}

	creds, err := auth.NewCredentials(cfg.API.Key, cfg.API.Secret)
	if err != nil {
		logger.Error("invalid credentials", "error", err)
		os.Exit(1)
	}

	minQuantity, err := cfg.MinQuantityValue()
	if err != nil {
		logger.Error("invalid min quantity", "error", err)
		os.Exit(1)
	}

	client := exmo.NewClient(
		cfg.API.BaseURL,
		creds,
		exmo.WithTimeout(cfg.API.Timeout),
		exmo.WithLogger(logger),
	)

	trader := trade.NewTrader(client, minQuantity, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	submission, violations, err := trader.Execute(ctx, *valueArg, pair, side)
	if err != nil {
		logger.Error("order failed", "error", err)
		os.Exit(1)
	}

	if len(violations) > 0 {
		fmt.Println("order rejected by validation:")
		for _, v := range violations {
			fmt.Printf("  - %s: %s\n", v.Reason, v.Detail)
		}
		os.Exit(1)
	}

	fmt.Printf("order accepted: id=%d ref=%s pair=%s side=%s quantity=%s\n",
		submission.OrderID,
		submission.Ref,
		submission.Order.Pair.Symbol(),
		submission.Order.Side.APIName(),
		submission.Order.Quantity,
	)
}
