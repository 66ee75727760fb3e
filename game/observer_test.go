package game

import (
	"testing"
)

type TestMessage int

func TestObserver_Order(t *testing.T) {
	o := NewObserver()

	var got []int
	o.Subscribe(func(m interface{}) {
		got = append(got, int(m.(TestMessage)))
	}, PriorityRender)

	o.Publish(TestMessage(1))
	o.Publish(TestMessage(2))
	o.Publish(TestMessage(3))

	if len(got) != 3 {
		t.Fatalf("received %v messages instead of 3", len(got))
	}
	for i, r := range got {
		if r != i+1 {
			t.Errorf("received %v instead of %v", r, i+1)
		}
	}
}

func TestObserver_Broadcast(t *testing.T) {
	o := NewObserver()

	var c1, c2 int
	o.Subscribe(func(m interface{}) { c1 += int(m.(TestMessage)) }, PriorityRender)
	o.Subscribe(func(m interface{}) { c2 += int(m.(TestMessage)) }, PriorityRender)

	o.Publish(TestMessage(1))

	if c1 != 1 || c2 != 1 {
		t.Errorf("received %v and %v instead of 1 and 1", c1, c2)
	}
}

func TestObserver_Unsubscribe(t *testing.T) {
	o := NewObserver()

	var got []TestMessage
	id := o.Subscribe(func(m interface{}) { got = append(got, m.(TestMessage)) }, PriorityRender)

	o.Publish(TestMessage(1))
	o.Unsubscribe(id)
	o.Publish(TestMessage(2))

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("received %v instead of [1]", got)
	}
	if o.Len() != 0 {
		t.Errorf("%v subscribers left", o.Len())
	}
}

func TestObserver_Sort(t *testing.T) {
	o := NewObserver()

	var order []Priority
	o.Subscribe(func(interface{}) { order = append(order, PriorityLast) }, PriorityLast)
	o.Subscribe(func(interface{}) { order = append(order, PriorityFirst) }, PriorityFirst)
	o.Subscribe(func(interface{}) { order = append(order, PriorityRender) }, PriorityRender)

	o.Publish(TestMessage(1))

	want := []Priority{PriorityFirst, PriorityRender, PriorityLast}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %v: received prio %v instead of %v", i, order[i], want[i])
		}
	}
}
