package provisioning

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name:  "type and message",
			event: Event{Type: EventPhaseStarted, Message: "starting"},
			want:  "phase.started starting",
		},
		{
			name:  "phase and resource",
			event: Event{Type: EventResourceDeclared, Phase: "infrastructure", Resource: "worker", Message: "node group declared"},
			want:  "resource.declared [infrastructure] resource=worker node group declared",
		},
		{
			name: "sorted fields",
			event: Event{Type: EventStack, Message: "CREATE_COMPLETE", Fields: map[string]string{
				"type": "AWS::EC2::VPC", "reason": "ok",
			}},
			want: "stack.event CREATE_COMPLETE (reason=ok, type=AWS::EC2::VPC)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatEvent(tt.event))
		})
	}
}

// TestConsoleObserver swaps the standard logger output, so it does not run
// in parallel.
func TestConsoleObserver(t *testing.T) {
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})

	observer := NewConsoleObserver().WithFields(map[string]string{"stack": "s"})
	observer.Printf("hello %s", "world")
	observer.Event(Event{Type: EventPhaseStarted, Phase: "images", Message: "starting"})
	observer.Progress("images", 1, 4)
	observer.Progress("images", 0, 0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "hello world", lines[0])
	assert.Equal(t, "phase.started [images] starting (stack=s)", lines[1])
	assert.Equal(t, "[images] Progress: 1/4 (25%)", lines[2])
	assert.Equal(t, "[images] Progress: 0/0", lines[3])
}

func TestEventHelpers(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogPhaseStart(observer, "deploy")
	LogPhaseComplete(observer, "deploy", 1500*time.Millisecond)
	LogPhaseFailed(observer, "deploy", errors.New("boom"))
	LogResourceDeclared(observer, "infrastructure", "node group", "s-worker")
	LogResourceCreated(observer, "deploy", "stack", "s", "arn:1")
	LogResourceExists(observer, "infrastructure", "hosted zone", "example.com", "Z1")
	LogResourceDeleting(observer, "destroy", "stack", "s")
	LogResourceDeleted(observer, "destroy", "stack", "s")
	LogValidation(observer, "validation", "keyPair", "missing", false)
	LogValidation(observer, "validation", "region", "bad", true)

	events := observer.Events()
	require.Len(t, events, 10)
	assert.Equal(t, "completed in 1.5s", events[1].Message)
	assert.Equal(t, "failed: boom", events[2].Message)
	assert.Equal(t, "arn:1", events[4].Fields["id"])
	assert.Equal(t, EventValidationWarning, events[8].Type)
	assert.Equal(t, EventValidationError, events[9].Type)
	for _, e := range events {
		assert.False(t, e.Timestamp.IsZero())
	}
	_, hasID := events[3].Fields["id"]
	assert.False(t, hasID, "declared resources carry no provider id")
}

func TestLogImageResolved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantName bool
	}{
		{name: "found", wantMsg: "ami-1", wantName: true},
		{name: "missing", err: errors.New("no image"), wantMsg: "no image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			observer := NewMockObserver()

			LogImageResolved(observer, "images", "eu-west-1", "ami-1", "ubuntu-noble", 2*time.Second, tt.err)

			events := observer.EventsOfType(EventImageResolved)
			require.Len(t, events, 1)
			assert.Equal(t, "eu-west-1", events[0].Resource)
			assert.Equal(t, tt.wantMsg, events[0].Message)
			assert.Equal(t, "2s", events[0].Fields["duration"])
			_, hasName := events[0].Fields["name"]
			assert.Equal(t, tt.wantName, hasName)
		})
	}
}

func TestLogStackEvent(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	LogStackEvent(observer, "deploy", "Vpc", "AWS::EC2::VPC", "CREATE_COMPLETE", "", at)
	LogStackEvent(observer, "deploy", "Nat0", "AWS::EC2::NatGateway", "CREATE_FAILED", "limit exceeded", at)

	events := observer.EventsOfType(EventStack)
	require.Len(t, events, 2)
	assert.Equal(t, at, events[0].Timestamp)
	assert.Equal(t, "CREATE_COMPLETE", events[0].Message)
	assert.NotContains(t, events[0].Fields, "reason")
	assert.Equal(t, "limit exceeded", events[1].Fields["reason"])
	assert.Equal(t, "AWS::EC2::NatGateway", events[1].Fields["type"])
}

func TestMockObserver_WithFieldsSharesRecords(t *testing.T) {
	t.Parallel()
	root := NewMockObserver()

	child := root.WithFields(map[string]string{"phase": "images"}).WithFields(map[string]string{"region": "eu-west-1"})
	child.Event(Event{Type: EventImageResolved, Message: "ami-1", Fields: map[string]string{"region": "us-east-1"}})
	child.Printf("n=%d", 1)

	events := root.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "images", events[0].Fields["phase"])
	assert.Equal(t, "us-east-1", events[0].Fields["region"], "event fields win over context fields")
	assert.Equal(t, []string{"n=1"}, root.Messages())
}
