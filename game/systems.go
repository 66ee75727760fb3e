package game

import (
	"fmt"
	"sort"
	"time"
)

type System interface {
	Update(delta time.Duration) error
}

type prioritizedSystem struct {
	name     string
	system   System
	priority Priority
}

// Engine updates its systems in order of priority
type Engine struct {
	systems        []prioritizedSystem
	updatePriority bool
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) AddSystem(name string, s System, p Priority) {
	e.systems = append(e.systems, prioritizedSystem{name, s, p})
	e.updatePriority = true
}

func (e *Engine) RemoveSystem(s System) {
	for i, f := range e.systems {
		if f.system == s {
			e.systems = append(e.systems[:i], e.systems[i+1:]...)
			return
		}
	}
}

func (e *Engine) Update(delta time.Duration) error {
	if e.updatePriority {
		sort.SliceStable(e.systems, func(i, j int) bool {
			return e.systems[i].priority < e.systems[j].priority
		})
		e.updatePriority = false
	}

	for _, s := range e.systems {
		if err := s.system.Update(delta); err != nil {
			return fmt.Errorf("system %s: %w", s.name, err)
		}
	}
	return nil
}
