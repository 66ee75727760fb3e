package game

import (
	"sort"
)

type Priority int

const (
	PriorityFirst Priority = iota
	PriorityBeforeRender
	PriorityRender
	PriorityAfterRender
	PriorityLast
)

type Listener func(msg interface{})

type subscriber struct {
	id int
	f  Listener
	p  Priority
}

// Observer delivers messages synchronously on the publishing goroutine,
// subscribers with a lower priority value first.
type Observer struct {
	subs   []subscriber
	nextID int
	update bool
}

func NewObserver() *Observer {
	return &Observer{}
}

// Subscribe registers f and returns a handle for Unsubscribe.
func (o *Observer) Subscribe(f Listener, p Priority) int {
	o.nextID++
	o.subs = append(o.subs, subscriber{o.nextID, f, p})
	o.update = true
	return o.nextID
}

func (o *Observer) Unsubscribe(id int) {
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

func (o *Observer) Publish(msg interface{}) {
	if o.update {
		sort.Stable(byPriority(o.subs))
		o.update = false
	}

	// listeners may unsubscribe while being called
	subs := make([]subscriber, len(o.subs))
	copy(subs, o.subs)

	for _, s := range subs {
		s.f(msg)
	}
}

func (o *Observer) Len() int {
	return len(o.subs)
}

// byPriority attaches the methods of sort.Interface to []subscriber, sorting in increasing order of priority
type byPriority []subscriber

func (s byPriority) Len() int           { return len(s) }
func (s byPriority) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s byPriority) Less(i, j int) bool { return s[i].p < s[j].p }
