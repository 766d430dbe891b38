package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runereum-labs/runereum/core"
)

var (
	createName         string
	createTicker       string
	createChain        string
	createCapabilities string
	createBehavior     string
	createAPIURL       string
)

// CreateCmd represents the create command
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Deploy a new agent",
	Long:  `Deploy a new trading agent with the given configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		if createAPIURL == "" {
			createAPIURL = "http://localhost:8080"
		}
		createAgent()
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createName, "name", "", "Agent name")
	CreateCmd.Flags().StringVar(&createTicker, "ticker", "", "Token ticker")
	CreateCmd.Flags().StringVar(&createChain, "chain", "base-sepolia", "Target chain")
	CreateCmd.Flags().StringVar(&createCapabilities, "capabilities", "", "Comma-separated capabilities (trade, analyze, automate, interact)")
	CreateCmd.Flags().StringVar(&createBehavior, "behavior", "", "Behavior description")
	CreateCmd.Flags().StringVar(&createAPIURL, "api-url", "", "API URL (default: http://localhost:8080)")

	CreateCmd.MarkFlagRequired("name")
	CreateCmd.MarkFlagRequired("ticker")
	CreateCmd.MarkFlagRequired("behavior")
}

func createAgent() {
	cfg := core.AgentConfig{
		Name:     createName,
		Ticker:   createTicker,
		Chain:    createChain,
		Behavior: createBehavior,
	}
	if createCapabilities != "" {
		cfg.Capabilities = strings.Split(createCapabilities, ",")
	}

	body, err := json.Marshal(cfg)
	if err != nil {
		fmt.Printf("Error encoding agent config: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Post(createAPIURL+"/api/agents", "application/json", bytes.NewBuffer(body))
	if err != nil {
		fmt.Printf("Error deploying agent: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Error deploying agent: %s\n", string(respBody))
		os.Exit(1)
	}

	var result struct {
		Message string     `json:"message"`
		Agent   core.Agent `json:"agent"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Agent deployed: %s (%s) with ID %d\n", result.Agent.Name, result.Agent.Ticker, result.Agent.ID)
}
