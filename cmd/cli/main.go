package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	userID  string
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finsim-cli",
		Short: "FinSim CLI tool",
		Long:  `A command line interface for interacting with the FinSim API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinSim API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID sent as X-User-ID when auth is disabled")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated servers")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Scenario operations",
	}
	scenariosCmd.AddCommand(listScenariosCmd())
	rootCmd.AddCommand(scenariosCmd)

	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(stressCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodGet, "/api/v1/scenarios/", nil)
			if err != nil {
				return err
			}

			var resp struct {
				Scenarios []struct {
					ID    string `json:"id"`
					Name  string `json:"name"`
					Start string `json:"start"`
					End   string `json:"end"`
				} `json:"scenarios"`
				Total int64 `json:"total"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("%-28s %-24s %-8s %-8s\n", "ID", "NAME", "START", "END")
			for _, s := range resp.Scenarios {
				fmt.Printf("%-28s %-24s %-8s %-8s\n", s.ID, truncate(s.Name, 24), s.Start, s.End)
			}
			fmt.Printf("total: %d\n", resp.Total)
			return nil
		},
	}
}

func simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <scenario-id>",
		Short: "Run the cached base projection for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doRequest(http.MethodGet, "/api/v1/scenarios/"+args[0]+"/simulate", nil)
			if err != nil {
				return err
			}

			var projection map[string]any
			if err := json.Unmarshal(body, &projection); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			printJSON(projection)
			return nil
		},
	}
}

func stressCmd() *cobra.Command {
	var shockSpecs []string

	cmd := &cobra.Command{
		Use:   "stress <scenario-id>",
		Short: "Run a shocked projection for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shocks := make([]map[string]any, 0, len(shockSpecs))
			for _, spec := range shockSpecs {
				shock, err := parseShock(spec)
				if err != nil {
					return err
				}
				shocks = append(shocks, shock)
			}

			payload, err := json.Marshal(map[string]any{"shocks": shocks})
			if err != nil {
				return err
			}

			body, err := doRequest(http.MethodPost, "/api/v1/scenarios/"+args[0]+"/stress", payload)
			if err != nil {
				return err
			}

			var projection map[string]any
			if err := json.Unmarshal(body, &projection); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			printJSON(projection)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&shockSpecs, "shock", nil,
		"Shock as class:delta[:start[:end]], e.g. portfolio:-0.3 or mortgage_interest:0.02:2025-01")
	return cmd
}

// parseShock converts a class:delta[:start[:end]] spec into the wire
// shape of one shock.
func parseShock(spec string) (map[string]any, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return nil, fmt.Errorf("invalid shock %q: want class:delta[:start[:end]]", spec)
	}

	shock := map[string]any{
		"asset_class": parts[0],
		"delta_pct":   parts[1],
	}
	if len(parts) > 2 && parts[2] != "" {
		shock["window_start"] = parts[2]
	}
	if len(parts) > 3 && parts[3] != "" {
		shock["window_end"] = parts[3]
	}
	return shock, nil
}

func doRequest(method, path string, payload []byte) ([]byte, error) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
