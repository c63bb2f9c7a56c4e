package models

import (
	"time"

	"github.com/ThatOtherAndrew/particlegl/internal/camera"
	"github.com/ThatOtherAndrew/particlegl/internal/config"
	"github.com/ThatOtherAndrew/particlegl/internal/particles"
)

// App is the state shared by the frame loop helpers.
type App struct {
	Settings  *config.Settings
	Camera    *camera.Camera
	Particles *particles.System

	StartTime time.Time
	Frames    uint64

	Width  int
	Height int

	Paused    bool
	PauseHeld bool
	IsExiting bool
}
