package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	var description string

	createAccountCmd := &cobra.Command{
		Use:   "create-account <name> <initial-balance>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/accounts", map[string]any{
				"name":            args[0],
				"initial_balance": args[1],
			})
		},
	}

	getAccountCmd := &cobra.Command{
		Use:   "get-account <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/accounts/" + args[0])
		},
	}

	depositCmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit money into an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/accounts/deposit", map[string]any{
				"to_account_id": args[0],
				"amount":        args[1],
				"description":   description,
			})
		},
	}
	depositCmd.Flags().StringVar(&description, "description", "", "Transaction description")

	withdrawCmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount>",
		Short: "Withdraw money from an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/accounts/withdraw", map[string]any{
				"from_account_id": args[0],
				"amount":          args[1],
				"description":     description,
			})
		},
	}
	withdrawCmd.Flags().StringVar(&description, "description", "", "Transaction description")

	transferCmd := &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "Transfer money between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/accounts/transfer", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   args[1],
				"amount":          args[2],
				"description":     description,
			})
		},
	}
	transferCmd.Flags().StringVar(&description, "description", "", "Transaction description")

	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "List an account's transactions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/accounts/" + args[0] + "/transactions")
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			get("/health")
		},
	}

	rootCmd.AddCommand(createAccountCmd, getAccountCmd, depositCmd, withdrawCmd, transferCmd, historyCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func post(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
