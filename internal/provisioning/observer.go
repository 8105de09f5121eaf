package provisioning

import (
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Observer receives the log lines and structured events of a pipeline run.
type Observer interface {
	Logger

	Event(event Event)

	// Progress reports how far a phase has come, for phases that know their
	// total amount of work up front.
	Progress(phase string, current, total int)

	// WithFields returns an Observer that adds fields to every event it
	// forwards. Fields set on the event itself take precedence.
	WithFields(fields map[string]string) Observer
}

// EventType classifies an Event.
type EventType string

// Event types emitted by the phases.
const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	EventResourceDeclared EventType = "resource.declared"
	EventResourceCreated  EventType = "resource.created"
	EventResourceExists   EventType = "resource.exists"
	EventResourceDeleting EventType = "resource.deleting"
	EventResourceDeleted  EventType = "resource.deleted"

	// EventImageResolved carries one region's image lookup outcome.
	EventImageResolved EventType = "image.resolved"
	// EventStack mirrors a CloudFormation stack event.
	EventStack EventType = "stack.event"

	EventValidationWarning EventType = "validation.warning"
	EventValidationError   EventType = "validation.error"

	EventProgress EventType = "progress"
)

// Event is a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string // logical ID, region, or config field the event is about
	Timestamp time.Time
	Fields    map[string]string
}

// ConsoleObserver writes events as plain lines through a standard library
// logger.
type ConsoleObserver struct {
	logger *log.Logger
	fields map[string]string
}

// NewConsoleObserver returns an observer writing to the default logger.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{logger: log.Default(), fields: map[string]string{}}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	o.logger.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	o.logger.Print(FormatEvent(withContext(event, o.fields)))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	line := "[" + phase + "] Progress: " + strconv.Itoa(current) + "/" + strconv.Itoa(total)
	if total > 0 {
		line += " (" + strconv.Itoa(current*100/total) + "%)"
	}
	o.logger.Print(line)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{logger: o.logger, fields: mergeFields(o.fields, fields)}
}

// withContext stamps the event and layers its own fields over the context
// fields.
func withContext(event Event, fields map[string]string) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Fields = mergeFields(fields, event.Fields)
	return event
}

func mergeFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// FormatEvent renders an event as one log line:
//
//	<type> [<phase>] resource=<resource> <message> (k=v, ...)
//
// Empty parts are left out and fields are sorted by key.
func FormatEvent(event Event) string {
	var b strings.Builder
	b.WriteString(string(event.Type))
	if event.Phase != "" {
		b.WriteString(" [" + event.Phase + "]")
	}
	if event.Resource != "" {
		b.WriteString(" resource=" + event.Resource)
	}
	b.WriteString(" " + event.Message)

	if len(event.Fields) == 0 {
		return b.String()
	}
	pairs := make([]string, 0, len(event.Fields))
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		pairs = append(pairs, k+"="+event.Fields[k])
	}
	b.WriteString(" (" + strings.Join(pairs, ", ") + ")")
	return b.String()
}
