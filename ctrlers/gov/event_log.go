package gov

import (
	abytes "github.com/rigochain/rigo-dao/types/bytes"
	"github.com/samber/lo"
	abcitypes "github.com/tendermint/tendermint/abci/types"
	"sync"
)

// IEventSink receives the events of every successful operation, in order.
type IEventSink interface {
	Emit(...IEvent)
}

// EventLog is an append-only, in-memory IEventSink.
type EventLog struct {
	events []IEvent
	mtx    sync.RWMutex
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Emit(evts ...IEvent) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.events = append(l.events, evts...)
}

func (l *EventLog) Len() int {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return len(l.events)
}

func (l *EventLog) All() []IEvent {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return append([]IEvent(nil), l.events...)
}

// Query returns the events of proposal `id` whose kind is one of `kinds`.
// A nil `id` matches every proposal and no `kinds` matches every kind.
func (l *EventLog) Query(id abytes.HexBytes, kinds ...EventKind) []IEvent {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return lo.Filter(l.events, func(evt IEvent, _ int) bool {
		if id != nil && abytes.Compare(id, evt.ProposalID()) != 0 {
			return false
		}
		return len(kinds) == 0 || lo.Contains(kinds, evt.Kind())
	})
}

func (l *EventLog) ABCIEvents() []abcitypes.Event {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return lo.Map(l.events, func(evt IEvent, _ int) abcitypes.Event {
		return evt.ToABCIEvent()
	})
}

var _ IEventSink = (*EventLog)(nil)
