// Package tui provides a Bubble Tea-based terminal UI for stack deployment
// and teardown.
package tui

import "time"

// PhaseMsg reports progress of a pipeline phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// ResourceMsg carries one CloudFormation stack event.
type ResourceMsg struct {
	LogicalID string
	Type      string
	Status    string
	Reason    string
	Time      time.Time
}

// ImageMsg reports the image lookup outcome for one region.
type ImageMsg struct {
	Region  string
	ImageID string
	Err     string
}

// LogMsg carries a free-form log line.
type LogMsg struct {
	Line    string
	Warning bool
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
