package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ThatOtherAndrew/particlegl/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the settings file path and the effective settings",
	Run:   showConfig,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the settings file with the defaults",
	Run:   resetConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(resetCmd)
}

func showConfig(cmd *cobra.Command, args []string) {
	path, err := settingsPath()
	if err != nil {
		log.Fatal("Failed to get settings path:", err)
	}
	settings, err := loadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		log.Fatal("Failed to marshal settings:", err)
	}
	fmt.Println("#", path)
	fmt.Println(string(data))
}

func resetConfig(cmd *cobra.Command, args []string) {
	path, err := settingsPath()
	if err != nil {
		log.Fatal("Failed to get settings path:", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		log.Fatal("Failed to save settings:", err)
	}
	fmt.Println("Reset settings:", path)
}
