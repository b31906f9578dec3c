package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storewise/storewise/apimodels"
	"github.com/storewise/storewise/internal/agent"
)

func askCmd() *cobra.Command {
	var storeID string
	var useMock bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Run a single question through the analytics pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, provider, client, fixtures := bootstrap()

			orchestrator := agent.NewOrchestrator(provider, client, fixtures)
			resp := orchestrator.Process(context.Background(), apimodels.AnalyzeRequest{
				StoreID:  storeID,
				Question: strings.Join(args, " "),
				UseMock:  useMock,
			})

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "demo-store.myshopify.com", "store domain to analyze")
	cmd.Flags().BoolVar(&useMock, "mock", true, "use generated fixture data instead of the live Admin API")

	return cmd
}
