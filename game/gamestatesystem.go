package game

import (
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type Mode int

const (
	ModeSpace Mode = iota
	ModeEarth
	ModeMars // not implemented yet, renders space
)

func (m Mode) String() string {
	switch m {
	case ModeSpace:
		return "space"
	case ModeEarth:
		return "earth"
	case ModeMars:
		return "mars"
	}
	return "unknown"
}

// earth seen from space, approaching it lands on the terrain
var earthApproachPoint = [3]int{10, 10, 10}

// truncatedDistance measures between integer truncated coordinates.
func truncatedDistance(p mgl32.Vec3, q [3]int) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := float64(q[i] - int(p[i]))
		sum += d * d
	}
	return math.Sqrt(sum)
}

// nextMode decides the mode for the camera position.
func nextMode(m Mode, pos mgl32.Vec3, cfg SolarConfig) Mode {
	switch m {
	case ModeSpace:
		if truncatedDistance(pos, earthApproachPoint) < float64(cfg.Approach) {
			return ModeEarth
		}
	case ModeEarth:
		if pos[1] > cfg.Escape {
			return ModeSpace
		}
	}
	return m
}

type GameStateSystem struct {
	mode   Mode
	since  time.Time
	camera *Camera
	cfg    SolarConfig

	change *Observer
}

func NewGameStateSystem(camera *Camera, cfg SolarConfig) *GameStateSystem {
	return &GameStateSystem{
		mode:   ModeSpace,
		since:  time.Now(),
		camera: camera,
		cfg:    cfg,
		change: NewObserver(),
	}
}

func (s *GameStateSystem) Mode() Mode {
	return s.mode
}

// OnModeChange publishes MessageModeChange
func (s *GameStateSystem) OnModeChange() *Observer {
	return s.change
}

func (s *GameStateSystem) Update(delta time.Duration) error {
	next := nextMode(s.mode, s.camera.Position, s.cfg)
	if next == s.mode {
		return nil
	}

	log.Printf("switching from %v to %v after %v", s.mode, next, time.Since(s.since).Round(time.Second))

	switch next {
	case ModeEarth:
		log.Println("entering earth surface")
		s.camera.Position = s.cfg.Landing
	case ModeSpace:
		log.Println("leaving to space")
		s.camera.Position = s.cfg.Start
		s.camera.LookAt(Earth.Position)
	}

	msg := MessageModeChange{s.mode, next}
	s.mode = next
	s.since = time.Now()
	s.change.Publish(msg)
	return nil
}
