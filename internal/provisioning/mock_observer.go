package provisioning

import (
	"fmt"
	"sync"
)

// MockObserver records everything it is given. It is safe for concurrent
// use.
type MockObserver struct {
	mu       sync.Mutex
	events   []Event
	messages []string
	fields   map[string]string
}

// NewMockObserver creates an empty MockObserver.
func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

// Printf records the formatted message.
func (m *MockObserver) Printf(format string, v ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

// Event records the event with the observer's fields merged in.
func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, withContext(event, m.fields))
}

// Progress records a progress event.
func (m *MockObserver) Progress(phase string, current, total int) {
	m.Event(Event{
		Type:    EventProgress,
		Phase:   phase,
		Message: "progress",
		Fields: map[string]string{
			"current": fmt.Sprint(current),
			"total":   fmt.Sprint(total),
		},
	})
}

// WithFields returns an observer that shares this one's records.
func (m *MockObserver) WithFields(fields map[string]string) Observer {
	return &fieldObserver{parent: m, fields: fields}
}

// Events returns a copy of the recorded events.
func (m *MockObserver) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// EventsOfType returns the recorded events of type t.
func (m *MockObserver) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns a copy of the recorded Printf messages.
func (m *MockObserver) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

type fieldObserver struct {
	parent *MockObserver
	fields map[string]string
}

func (f *fieldObserver) Printf(format string, v ...any) { f.parent.Printf(format, v...) }

func (f *fieldObserver) Event(event Event) {
	f.parent.Event(withContext(event, f.fields))
}

func (f *fieldObserver) Progress(phase string, current, total int) {
	f.parent.Progress(phase, current, total)
}

func (f *fieldObserver) WithFields(fields map[string]string) Observer {
	return &fieldObserver{parent: f.parent, fields: mergeFields(f.fields, fields)}
}
