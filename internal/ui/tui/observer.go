package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napo-io/k8sway/internal/provisioning"
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Observer implements provisioning.Observer by translating pipeline events
// into program messages.
type Observer struct {
	send Sender
}

// NewObserver creates an observer that forwards to send.
func NewObserver(send Sender) *Observer {
	return &Observer{send: send}
}

// Printf implements provisioning.Logger.
func (o *Observer) Printf(format string, v ...any) {
	o.send.Send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements provisioning.Observer.
func (o *Observer) Event(e provisioning.Event) {
	switch e.Type {
	case provisioning.EventPhaseStarted:
		o.send.Send(PhaseMsg{Phase: e.Phase})
	case provisioning.EventPhaseCompleted:
		o.send.Send(PhaseMsg{Phase: e.Phase, Done: true})
	case provisioning.EventPhaseFailed:
		o.send.Send(PhaseMsg{Phase: e.Phase, Err: errors.New(e.Message)})
	case provisioning.EventStack:
		o.send.Send(ResourceMsg{
			LogicalID: e.Resource,
			Type:      e.Fields["type"],
			Status:    e.Message,
			Reason:    e.Fields["reason"],
			Time:      e.Timestamp,
		})
	case provisioning.EventImageResolved:
		msg := ImageMsg{Region: e.Resource}
		if _, ok := e.Fields["name"]; ok {
			msg.ImageID = e.Message
		} else {
			msg.Err = e.Message
		}
		o.send.Send(msg)
	case provisioning.EventValidationWarning, provisioning.EventValidationError:
		o.send.Send(LogMsg{Line: fmt.Sprintf("%s: %s", e.Resource, e.Message), Warning: true})
	default:
		o.send.Send(LogMsg{Line: provisioning.FormatEvent(e)})
	}
}

// Progress implements provisioning.Observer. Phase events already drive the
// progress bar.
func (o *Observer) Progress(string, int, int) {}

// WithFields implements provisioning.Observer. Context fields are not
// displayed.
func (o *Observer) WithFields(map[string]string) provisioning.Observer {
	return o
}
