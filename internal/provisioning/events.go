package provisioning

import (
	"fmt"
	"time"
)

// LogPhaseStart reports that a phase began.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete reports that a phase finished after duration.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: "completed in " + duration.Round(time.Millisecond).String(),
	})
}

// LogPhaseFailed reports that a phase stopped the pipeline.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{Type: EventPhaseFailed, Phase: phase, Message: fmt.Sprintf("failed: %v", err)})
}

// resourceEvent builds the event shared by the resource helpers. kind is a
// human readable resource kind such as "node group" or "stack".
func resourceEvent(t EventType, phase, kind, name, id, message string) Event {
	fields := map[string]string{"type": kind}
	if id != "" {
		fields["id"] = id
	}
	return Event{Type: t, Phase: phase, Resource: name, Message: message, Fields: fields}
}

// LogResourceDeclared reports a resource added to the topology.
func LogResourceDeclared(observer Observer, phase, kind, name string) {
	observer.Event(resourceEvent(EventResourceDeclared, phase, kind, name, "", kind+" declared"))
}

// LogResourceCreated reports a resource the provider created or updated.
func LogResourceCreated(observer Observer, phase, kind, name, id string) {
	observer.Event(resourceEvent(EventResourceCreated, phase, kind, name, id, kind+" created"))
}

// LogResourceExists reports a resource that was found as it should be.
func LogResourceExists(observer Observer, phase, kind, name, id string) {
	observer.Event(resourceEvent(EventResourceExists, phase, kind, name, id, kind+" already exists"))
}

// LogResourceDeleting reports the start of a deletion.
func LogResourceDeleting(observer Observer, phase, kind, name string) {
	observer.Event(resourceEvent(EventResourceDeleting, phase, kind, name, "", "deleting "+kind))
}

// LogResourceDeleted reports a finished deletion.
func LogResourceDeleted(observer Observer, phase, kind, name string) {
	observer.Event(resourceEvent(EventResourceDeleted, phase, kind, name, "", kind+" deleted"))
}

// LogImageResolved reports the image lookup outcome for one region. A
// successful lookup carries the image name in the "name" field; a failed one
// carries the error as its message.
func LogImageResolved(observer Observer, phase, region, imageID, imageName string, took time.Duration, err error) {
	fields := map[string]string{"region": region, "duration": took.String()}
	msg := imageID
	if err != nil {
		msg = err.Error()
	} else {
		fields["name"] = imageName
	}
	observer.Event(Event{Type: EventImageResolved, Phase: phase, Resource: region, Message: msg, Fields: fields})
}

// LogStackEvent mirrors one CloudFormation stack event. The status becomes
// the message; the provider's reason is added when present.
func LogStackEvent(observer Observer, phase, logicalID, resourceType, status, reason string, at time.Time) {
	fields := map[string]string{"type": resourceType}
	if reason != "" {
		fields["reason"] = reason
	}
	observer.Event(Event{
		Type:      EventStack,
		Phase:     phase,
		Resource:  logicalID,
		Message:   status,
		Timestamp: at,
		Fields:    fields,
	})
}

// LogValidation reports a configuration finding on field.
func LogValidation(observer Observer, phase, field, message string, isError bool) {
	t := EventValidationWarning
	if isError {
		t = EventValidationError
	}
	observer.Event(Event{Type: t, Phase: phase, Resource: field, Message: message})
}
