package main

import (
	"context"
	"errors"
	"flag"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/pevans/wordlist/api"
	"github.com/pevans/wordlist/config"
)

func handleServe(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "Address to listen on (WORDLIST_ADDR)")
	fs.Parse(args)

	server := api.NewAPIServer(api.NewWordStore(cfg.Output.Filtered), logger)
	if err := server.Run(ctx, *addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "err", err)
		return 1
	}
	return 0
}
