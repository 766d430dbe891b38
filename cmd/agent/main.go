package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runereum-labs/runereum/cmd/agent/commands"
)

var rootCmd = &cobra.Command{
	Use:   "agent-cli",
	Short: "Runereum Agent CLI",
	Long:  `Command line interface for managing Runereum trading agents.`,
}

func init() {
	rootCmd.AddCommand(commands.CreateCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.DeleteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
