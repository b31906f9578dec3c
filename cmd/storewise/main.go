package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/storewise/storewise/internal/config"
	"github.com/storewise/storewise/internal/llm"
	"github.com/storewise/storewise/internal/shopify"
)

func main() {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "storewise",
		Short: "LLM-powered analytics agent for e-commerce stores",
	}
	root.AddCommand(serveCmd(), askCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the shared dependencies: config, LLM provider, Admin API
// client and the fixture provider (constructed once, immutable thereafter).
func bootstrap() (*config.Config, llm.Provider, *shopify.Client, *shopify.FixtureProvider) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	provider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	return cfg, provider, shopify.NewClient(cfg.Shopify), shopify.NewFixtureProvider()
}
