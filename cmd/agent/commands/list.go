package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/runereum-labs/runereum/core"
)

var listAPIURL string

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents",
	Long:  `List all deployed agents.`,
	Run: func(cmd *cobra.Command, args []string) {
		if listAPIURL == "" {
			listAPIURL = "http://localhost:8080"
		}
		listAgents()
	},
}

func init() {
	ListCmd.Flags().StringVar(&listAPIURL, "api-url", "", "API URL (default: http://localhost:8080)")
}

func listAgents() {
	resp, err := http.Get(listAPIURL + "/api/agents")
	if err != nil {
		fmt.Printf("Error listing agents: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var result struct {
		Agents []core.Agent `json:"agents"`
		Count  int          `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}

	if result.Count == 0 {
		fmt.Println("No agents deployed")
		return
	}

	fmt.Printf("%-5s %-20s %-8s %-10s %s\n", "ID", "NAME", "TICKER", "STATUS", "INTELLIGENCE")
	for _, agent := range result.Agents {
		fmt.Printf("%-5d %-20s %-8s %-10s %d\n", agent.ID, agent.Name, agent.Ticker, agent.Status, agent.Intelligence)
	}
}
