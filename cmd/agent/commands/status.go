package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	statusAgentID int
	statusValue   string
	statusAPIURL  string
)

// StatusCmd represents the status command
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Change an agent's status",
	Long:  `Transition an agent to active, paused, or stopped.`,
	Run: func(cmd *cobra.Command, args []string) {
		if statusAPIURL == "" {
			statusAPIURL = "http://localhost:8080"
		}
		setStatus()
	},
}

func init() {
	StatusCmd.Flags().IntVar(&statusAgentID, "id", 0, "Agent ID")
	StatusCmd.Flags().StringVar(&statusValue, "status", "", "New status (active, paused, stopped)")
	StatusCmd.Flags().StringVar(&statusAPIURL, "api-url", "", "API URL (default: http://localhost:8080)")

	StatusCmd.MarkFlagRequired("id")
	StatusCmd.MarkFlagRequired("status")
}

func setStatus() {
	body, _ := json.Marshal(map[string]string{"status": statusValue})

	url := fmt.Sprintf("%s/api/agents/%d/status", statusAPIURL, statusAgentID)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error updating status: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		fmt.Printf("Error updating status: %s\n", string(respBody))
		os.Exit(1)
	}

	fmt.Printf("Agent %d is now %s\n", statusAgentID, statusValue)
}
