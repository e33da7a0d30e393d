package events

import "time"

// Type enumerates the events the engine dispatches.
type Type int

const (
	KeyDown Type = iota
	KeyUp
	Tick
)

func (t Type) String() string {
	switch t {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case Tick:
		return "Tick"
	default:
		return "Unknown"
	}
}

type Event struct {
	Type  Type
	Key   int           // raw key code for KeyDown/KeyUp
	Delta time.Duration // time since the previous tick for Tick
}

type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously to the handlers subscribed to their
// type, in subscription order. It is not safe for concurrent use: every
// Publish happens on the window thread.
type Bus struct {
	nextID   uint64
	handlers map[Type][]subscriber
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]subscriber)}
}

// Subscription removes its handler from the bus when cancelled.
type Subscription struct {
	bus *Bus
	typ Type
	id  uint64
}

func (b *Bus) Subscribe(typ Type, handler Handler) Subscription {
	b.nextID++
	b.handlers[typ] = append(b.handlers[typ], subscriber{id: b.nextID, handler: handler})
	return Subscription{bus: b, typ: typ, id: b.nextID}
}

// Cancel is safe to call more than once.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	subs := s.bus.handlers[s.typ]
	for i := range subs {
		if subs[i].id == s.id {
			s.bus.handlers[s.typ] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) Publish(ev Event) {
	for _, sub := range b.handlers[ev.Type] {
		sub.handler(ev)
	}
}

// Count reports how many handlers are subscribed to typ.
func (b *Bus) Count(typ Type) int {
	return len(b.handlers[typ])
}
