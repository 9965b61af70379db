package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/theRoadz/farcaster-neynar/internal/adapters/cli"
	"github.com/theRoadz/farcaster-neynar/internal/app/bootstrap"
	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/contracts"
)

func main() {
	username := flag.String("user", "", "Farcaster username to look up")
	fid := flag.String("fid", "", "Farcaster ID to look up")
	address := flag.String("address", "", "Only count transactions for this address")
	configPath := flag.String("config", "configs/default.yaml", "Path to the YAML config file")
	asJSON := flag.Bool("json", false, "Print the lookup as JSON")
	flag.Parse()

	if *username == "" && *fid == "" && *address == "" {
		fmt.Fprintln(os.Stderr, "usage: lookup --user <username> | --fid <fid> | --address <0x...>")
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.LogLevel = "error"
	cfg.MetricsEnabled = false
	logger := bootstrap.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	components, err := bootstrap.BuildComponents(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("build components: %v", err)
	}
	defer components.Close()

	if *address != "" {
		activity, err := components.Service.LookupOnchain(ctx, *address)
		if err != nil {
			log.Fatalf("lookup onchain: %v", err)
		}
		printJSON(contracts.NewOnchainResponse(activity))
		return
	}

	view, err := components.Service.Dashboard(ctx, application.UserQuery{Username: *username, FID: *fid})
	if err != nil {
		log.Fatalf("lookup user: %v", err)
	}
	if *asJSON {
		printJSON(contracts.NewDashboardResponse(view))
		return
	}
	if err := cli.Render(os.Stdout, view); err != nil {
		log.Fatalf("render: %v", err)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
