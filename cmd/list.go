package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/particlegl/internal/scenario"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available scenarios",
	Run:   listScenarios,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listScenarios(cmd *cobra.Command, args []string) {
	fmt.Println("Available scenarios:")
	for _, s := range scenario.All() {
		marker := " "
		if s.Name == scenario.Default {
			marker = "*"
		}
		fmt.Printf(" %s %-10s %7d particles  %s\n", marker, s.Name, s.Grid.Total(), s.Description)
	}
}
