package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ThatOtherAndrew/particlegl/internal/particles"
	"github.com/ThatOtherAndrew/particlegl/internal/scenario"
	"github.com/go-gl/mathgl/mgl32"
)

type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`
}

type CameraSettings struct {
	Position    mgl32.Vec3 `json:"position"`
	Speed       float32    `json:"speed"`
	Sensitivity float32    `json:"sensitivity"`
	Fov         float32    `json:"fov"`
	Near        float32    `json:"near"`
	Far         float32    `json:"far"`
}

// ShaderSettings holds paths to GLSL files. Empty paths use the built-in shaders.
type ShaderSettings struct {
	Vertex   string `json:"vertex"`
	Fragment string `json:"fragment"`
	Compute  string `json:"compute"`
}

func (s ShaderSettings) Paths() []string {
	var paths []string
	for _, p := range []string{s.Vertex, s.Fragment, s.Compute} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

type Settings struct {
	Window   WindowSettings `json:"window"`
	Scenario string         `json:"scenario"`
	// Grid overrides the scenario's particle grid when set.
	Grid         *particles.Grid `json:"grid,omitempty"`
	Center       mgl32.Vec3      `json:"center"`
	CubeSize     float32         `json:"cube_size"`
	Color        mgl32.Vec4      `json:"color"`
	Background   mgl32.Vec4      `json:"background"`
	Camera       CameraSettings  `json:"camera"`
	Shaders      ShaderSettings  `json:"shaders"`
	WatchShaders bool            `json:"watch_shaders"`
}

func Default() *Settings {
	return &Settings{
		Window: WindowSettings{
			Width:  800,
			Height: 600,
			Title:  "particlegl",
			VSync:  true,
		},
		Scenario:   scenario.Default,
		Center:     mgl32.Vec3{0, 0, -15},
		CubeSize:   particles.DefaultCubeSize,
		Color:      mgl32.Vec4{0.15, 0.15, 0.15, 0.7},
		Background: mgl32.Vec4{0.02, 0.02, 0.03, 1},
		Camera: CameraSettings{
			Position:    mgl32.Vec3{0, 0, 0},
			Speed:       3.25,
			Sensitivity: 0.05,
			Fov:         45,
			Near:        0.1,
			Far:         100,
		},
	}
}

func GetDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "particlegl")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

func GetSettingsPath() (string, error) {
	configDir, err := GetDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath)
}

// LoadSettingsFrom reads settings from path, creating the file with defaults
// if it does not exist. Malformed files and invalid values fall back to
// defaults with a warning rather than failing.
func LoadSettingsFrom(settingsPath string) (*Settings, error) {
	defaultSettings := Default()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := Save(settingsPath, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	settings.validate(defaultSettings)
	return settings, nil
}

func Save(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) validate(d *Settings) {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		log.Printf("Invalid window size %dx%d, using default %dx%d",
			s.Window.Width, s.Window.Height, d.Window.Width, d.Window.Height)
		s.Window.Width, s.Window.Height = d.Window.Width, d.Window.Height
	}

	if _, err := scenario.Lookup(s.Scenario); err != nil {
		log.Printf("Invalid scenario: %v, using default %q", err, d.Scenario)
		s.Scenario = d.Scenario
	}

	if s.Grid != nil {
		if err := s.Grid.Validate(); err != nil {
			log.Printf("Invalid grid: %v, using the scenario grid", err)
			s.Grid = nil
		}
	}

	if s.CubeSize <= 0 {
		log.Printf("Invalid cube_size value %.2f, must be positive, using default %.2f", s.CubeSize, d.CubeSize)
		s.CubeSize = d.CubeSize
	}

	// Validate and clamp colour channels to [0, 1]
	for i := range s.Color {
		if s.Color[i] < 0.0 || s.Color[i] > 1.0 {
			log.Printf("Invalid color value %v, channels must be between 0.0 and 1.0, using default %v", s.Color, d.Color)
			s.Color = d.Color
			break
		}
	}

	c, dc := &s.Camera, d.Camera
	if c.Fov < 1 || c.Fov > 45 {
		log.Printf("Invalid camera fov %.2f, must be between 1 and 45, using default %.2f", c.Fov, dc.Fov)
		c.Fov = dc.Fov
	}
	if c.Speed <= 0 {
		log.Printf("Invalid camera speed %.2f, must be positive, using default %.2f", c.Speed, dc.Speed)
		c.Speed = dc.Speed
	}
	if c.Sensitivity <= 0 {
		log.Printf("Invalid camera sensitivity %.3f, must be positive, using default %.3f", c.Sensitivity, dc.Sensitivity)
		c.Sensitivity = dc.Sensitivity
	}
	if c.Near <= 0 || c.Far <= c.Near {
		log.Printf("Invalid camera clip planes near=%.2f far=%.2f, using defaults", c.Near, c.Far)
		c.Near, c.Far = dc.Near, dc.Far
	}
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
