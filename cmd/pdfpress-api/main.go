package main

import (
	"os"

	"pdfpress/internal/config"
	"pdfpress/internal/transport"
)

func main() {
	cfg := config.New()

	if cfg.APIKey == "" {
		cfg.Logger.Warn("PDFPRESS_API_KEY is not set, the API accepts unauthenticated requests")
	}

	server := transport.NewHTTPServer(cfg)
	if err := server.Start(); err != nil {
		cfg.Logger.Error("API server stopped", "error", err)
		os.Exit(1)
	}
}
