package provisioning

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// LogrObserver adapts a logr.Logger to Observer. Events become info lines
// with the event type as the message and every event attribute as a key.
type LogrObserver struct {
	log logr.Logger
}

// NewLogrObserver wraps log.
func NewLogrObserver(log logr.Logger) *LogrObserver {
	return &LogrObserver{log: log}
}

// NewJSONObserver returns an observer writing one JSON object per line
// through write.
func NewJSONObserver(write func(line string)) *LogrObserver {
	return NewLogrObserver(funcr.NewJSON(func(obj string) {
		write(obj)
	}, funcr.Options{LogTimestamp: true}))
}

// Printf implements Logger.
func (o *LogrObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer. Failures and validation errors are logged as
// errors.
func (o *LogrObserver) Event(event Event) {
	kv := []any{}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	kv = append(kv, "message", event.Message)

	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, event.Fields[k])
	}

	switch event.Type {
	case EventPhaseFailed, EventValidationError:
		o.log.Error(nil, string(event.Type), kv...)
	default:
		o.log.Info(string(event.Type), kv...)
	}
}

// Progress implements Observer.
func (o *LogrObserver) Progress(phase string, current, total int) {
	o.log.V(1).Info(string(EventProgress), "phase", phase, "current", current, "total", total)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return &LogrObserver{log: o.log.WithValues(kv...)}
}
