package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/storewise/storewise/internal/agent"
	"github.com/storewise/storewise/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the analytics HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, provider, client, fixtures := bootstrap()

			orchestrator := agent.NewOrchestrator(provider, client, fixtures)
			srv := server.New(*cfg, orchestrator)
			if err := srv.Run(); err != nil {
				log.Fatalf("server error: %v", err)
			}
		},
	}
}
