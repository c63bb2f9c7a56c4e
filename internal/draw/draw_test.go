package draw

import (
	"testing"

	"github.com/ThatOtherAndrew/particlegl/internal/config"
	"github.com/ThatOtherAndrew/particlegl/internal/gpu/gputest"
	"github.com/ThatOtherAndrew/particlegl/internal/models"
	"github.com/ThatOtherAndrew/particlegl/internal/particles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*models.App, *gputest.Recorder) {
	t.Helper()
	dev := gputest.NewRecorder()

	cfg := particles.DefaultConfig()
	cfg.Grid = particles.Cube(3)
	sys, err := particles.New(dev, cfg)
	require.NoError(t, err)
	dev.Reset()

	settings := config.Default()
	return &models.App{
		Settings:  settings,
		Camera:    settings.Camera.NewCamera(),
		Particles: sys,
		Width:     800,
		Height:    600,
	}, dev
}

func TestDrawClearsBeforeFrame(t *testing.T) {
	app, dev := newApp(t)

	New(app, dev).Draw(0.016)

	assert.Equal(t,
		[]gputest.Op{gputest.OpClear, gputest.OpDispatch, gputest.OpBarrier, gputest.OpDraw},
		dev.Filter(gputest.OpClear, gputest.OpDispatch, gputest.OpBarrier, gputest.OpDraw))
	assert.Equal(t, app.Settings.Background[:], dev.Find(gputest.OpClear)[0].Values)
	assert.Equal(t, uint64(1), app.Frames)
}

func TestDrawUploadsViewProjection(t *testing.T) {
	app, dev := newApp(t)

	New(app, dev).Draw(0.016)

	c, ok := dev.UniformAt(0)
	require.True(t, ok)
	want := app.Camera.ViewProjection(800.0/600.0, app.Settings.Camera.Near, app.Settings.Camera.Far)
	assert.Equal(t, want[:], c.Values)
}

func TestDrawPausedUsesZeroStep(t *testing.T) {
	app, dev := newApp(t)
	app.Paused = true

	New(app, dev).Draw(0.016)

	c, ok := dev.UniformAt(2)
	require.True(t, ok)
	assert.Equal(t, []float32{0}, c.Values)
	assert.Len(t, dev.Find(gputest.OpDraw), 1)
}

func TestDrawSkipsEmptyFramebuffer(t *testing.T) {
	app, dev := newApp(t)
	app.Height = 0

	New(app, dev).Draw(0.016)

	assert.Equal(t, []gputest.Op{gputest.OpClear}, dev.Ops())
	assert.Zero(t, app.Frames)
}

func TestResize(t *testing.T) {
	app, dev := newApp(t)

	New(app, dev).Resize(1024, 768)

	assert.Equal(t, 1024, app.Width)
	assert.Equal(t, 768, app.Height)
	vp := dev.Find(gputest.OpViewport)
	require.Len(t, vp, 1)
	assert.Equal(t, []int32{0, 0, 1024, 768}, vp[0].Ints)
}
