package cmd

import (
	"log"

	"github.com/ThatOtherAndrew/particlegl/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "particlegl",
	Short: "GPU particle simulation driven by OpenGL compute shaders",
	Long: `particlegl simulates a grid of particles on the GPU and renders them
as points. Particles fall towards a set of attractors; the camera is
flown with WASD, Space and Shift, and aimed with the mouse.`,
	Run: Run,
}

func init() {
	log.SetFlags(0)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default ~/.config/particlegl/settings.json)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadSettings() (*config.Settings, error) {
	if configPath != "" {
		return config.LoadSettingsFrom(configPath)
	}
	return config.LoadSettings()
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetSettingsPath()
}
