package commands

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	deleteAgentID int
	deleteAPIURL  string
)

// DeleteCmd represents the delete command
var DeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an agent",
	Long:  `Remove a deployed agent permanently.`,
	Run: func(cmd *cobra.Command, args []string) {
		if deleteAPIURL == "" {
			deleteAPIURL = "http://localhost:8080"
		}
		deleteAgent()
	},
}

func init() {
	DeleteCmd.Flags().IntVar(&deleteAgentID, "id", 0, "Agent ID")
	DeleteCmd.Flags().StringVar(&deleteAPIURL, "api-url", "", "API URL (default: http://localhost:8080)")

	DeleteCmd.MarkFlagRequired("id")
}

func deleteAgent() {
	url := fmt.Sprintf("%s/api/agents/%d", deleteAPIURL, deleteAgentID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error deleting agent: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		fmt.Printf("Error deleting agent: %s\n", string(respBody))
		os.Exit(1)
	}

	fmt.Printf("Agent %d deleted\n", deleteAgentID)
}
