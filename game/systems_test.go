package game

import (
	"errors"
	"testing"
	"time"
)

type testSortSystem struct {
	update func() error
}

func (s *testSortSystem) Update(time.Duration) error {
	if s.update != nil {
		return s.update()
	}
	return errors.New("test system was not properly initialized")
}

func TestEngineSortSystems(t *testing.T) {
	var order []Priority
	newSystem := func(p Priority) System {
		return &testSortSystem{update: func() error {
			order = append(order, p)
			return nil
		}}
	}

	e := NewEngine()
	e.AddSystem("render", newSystem(PriorityRender), PriorityRender)
	e.AddSystem("last", newSystem(PriorityLast), PriorityLast)
	e.AddSystem("first", newSystem(PriorityFirst), PriorityFirst)

	if err := e.Update(time.Millisecond); err != nil {
		t.Fatal(err)
	}

	want := []Priority{PriorityFirst, PriorityRender, PriorityLast}
	if len(order) != len(want) {
		t.Fatalf("updated %v systems instead of %v", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %v: prio %v instead of %v", i, order[i], want[i])
		}
	}
}

func TestEngineRemoveSystem(t *testing.T) {
	var calls int
	s := &testSortSystem{update: func() error { calls++; return nil }}

	e := NewEngine()
	e.AddSystem("counter", s, PriorityRender)
	e.Update(0)
	e.RemoveSystem(s)
	e.Update(0)

	if calls != 1 {
		t.Errorf("system updated %v times instead of 1", calls)
	}
}

func TestEngineUpdateError(t *testing.T) {
	failing := errors.New("boom")

	e := NewEngine()
	e.AddSystem("failing", &testSortSystem{update: func() error { return failing }}, PriorityRender)

	err := e.Update(0)
	if !errors.Is(err, failing) {
		t.Errorf("error %v does not wrap %v", err, failing)
	}
}
