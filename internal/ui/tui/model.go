package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napo-io/k8sway/internal/ui/benchmarks"
)

// Mode selects which pipeline the model tracks.
type Mode string

// Supported modes.
const (
	ModeDeploy  Mode = "deploy"
	ModeDestroy Mode = "destroy"
)

// maxLogLines bounds the log tail kept for display.
const maxLogLines = 6

// phaseNames maps pipeline phase keys to display names.
var phaseNames = map[string]string{
	"validation":     "Validate configuration",
	"workstation":    "Detect workstation address",
	"images":         "Resolve machine images",
	"infrastructure": "Synthesize template",
	"deploy":         "Create or update stack",
	"destroy":        "Delete stack",
}

// PipelinePhase represents a pipeline phase for display.
type PipelinePhase struct {
	Name      string
	Key       string
	Done      bool
	Active    bool
	Err       error
	StartedAt time.Time
	EndedAt   *time.Time
}

// Resource is the latest known state of one stack resource.
type Resource struct {
	LogicalID string
	Type      string
	Status    string
	Reason    string
	FirstSeen time.Time
	UpdatedAt time.Time
}

// InProgress reports whether CloudFormation is still working on the resource.
func (r Resource) InProgress() bool {
	return strings.HasSuffix(r.Status, "_IN_PROGRESS")
}

// Failed reports whether the resource reached a failed state.
func (r Resource) Failed() bool {
	return strings.HasSuffix(r.Status, "_FAILED")
}

// Model is the Bubble Tea model for the TUI dashboard.
type Model struct {
	StackName string
	Region    string
	Mode      Mode

	Phases []PipelinePhase

	// Stack resources in first-seen order.
	Resources     []Resource
	resourceIndex map[string]int

	// Image lookups by region.
	Images []ImageMsg

	Logs     []string
	Warnings []string

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewDeployModel creates a model for the deploy command TUI.
func NewDeployModel(stackName, region string) Model {
	return newModel(ModeDeploy, stackName, region, benchmarks.DeployOrder)
}

// NewDestroyModel creates a model for the destroy command TUI.
func NewDestroyModel(stackName, region string) Model {
	return newModel(ModeDestroy, stackName, region, benchmarks.DestroyOrder)
}

func newModel(mode Mode, stackName, region string, order []string) Model {
	phases := make([]PipelinePhase, 0, len(order))
	for _, key := range order {
		phases = append(phases, PipelinePhase{Name: phaseNames[key], Key: key})
	}
	return Model{
		StackName:          stackName,
		Region:             region,
		Mode:               mode,
		Phases:             phases,
		resourceIndex:      make(map[string]int),
		StartTime:          time.Now(),
		PerformanceScale:   1.0,
		EstimatedRemaining: benchmarks.TotalEstimate(order),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case ResourceMsg:
		m.updateResource(msg)

	case ImageMsg:
		m.Images = append(m.Images, msg)

	case LogMsg:
		m.appendLog(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	now := time.Now()
	// Mark previous phases as done
	for i := 0; i < idx; i++ {
		if !m.Phases[i].Done {
			m.Phases[i].Done = true
			m.Phases[i].EndedAt = &now
		}
		m.Phases[i].Active = false
	}

	phase := &m.Phases[idx]
	if phase.StartedAt.IsZero() {
		phase.StartedAt = now
	}
	switch {
	case msg.Err != nil:
		phase.Err = msg.Err
		phase.Active = false
		phase.EndedAt = &now
	case msg.Done:
		phase.Done = true
		phase.Active = false
		phase.EndedAt = &now
	default:
		phase.Active = true
	}
}

func (m *Model) updateResource(msg ResourceMsg) {
	if m.resourceIndex == nil {
		m.resourceIndex = make(map[string]int)
	}
	ts := msg.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	idx, ok := m.resourceIndex[msg.LogicalID]
	if !ok {
		m.Resources = append(m.Resources, Resource{LogicalID: msg.LogicalID, FirstSeen: ts})
		idx = len(m.Resources) - 1
		m.resourceIndex[msg.LogicalID] = idx
	}

	r := &m.Resources[idx]
	if msg.Type != "" {
		r.Type = msg.Type
	}
	r.Status = msg.Status
	r.Reason = msg.Reason
	r.UpdatedAt = ts
}

func (m *Model) appendLog(msg LogMsg) {
	if msg.Warning {
		m.Warnings = append(m.Warnings, msg.Line)
		return
	}
	m.Logs = append(m.Logs, msg.Line)
	if len(m.Logs) > maxLogLines {
		m.Logs = m.Logs[len(m.Logs)-maxLogLines:]
	}
}

// ActivePhase returns the key of the running phase, or "".
func (m Model) ActivePhase() string {
	for _, phase := range m.Phases {
		if phase.Active {
			return phase.Key
		}
	}
	return ""
}

// history converts phase state into benchmark records.
func (m Model) history() []benchmarks.PhaseRecord {
	var out []benchmarks.PhaseRecord
	for _, phase := range m.Phases {
		if phase.StartedAt.IsZero() {
			continue
		}
		out = append(out, benchmarks.PhaseRecord{Phase: phase.Key, StartedAt: phase.StartedAt, EndedAt: phase.EndedAt})
	}
	return out
}

// started reports whether any phase has begun.
func (m *Model) started() bool {
	for _, phase := range m.Phases {
		if !phase.StartedAt.IsZero() {
			return true
		}
	}
	return false
}

// updateETA estimates the remaining time. Before the first phase starts
// the full benchmark applies; once the run ends nothing remains.
func (m *Model) updateETA() {
	order := benchmarks.DeployOrder
	if m.Mode == ModeDestroy {
		order = benchmarks.DestroyOrder
	}

	active := m.ActivePhase()
	if active == "" {
		m.EstimatedRemaining = 0
		if !m.Done && m.Err == nil && !m.started() {
			m.EstimatedRemaining = benchmarks.TotalEstimate(order)
		}
		return
	}

	var elapsed time.Duration
	for _, phase := range m.Phases {
		if phase.Key == active {
			elapsed = time.Since(phase.StartedAt)
		}
	}

	history := m.history()
	m.PerformanceScale = benchmarks.PerformanceScale(active, elapsed, history)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(order, active, elapsed, history, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}

// Summary returns a one-line outcome for printing after the program exits.
func (m Model) Summary() string {
	elapsed := formatDuration(time.Since(m.StartTime))
	if m.Err != nil {
		return fmt.Sprintf("%s of %s failed after %s: %v", m.Mode, m.StackName, elapsed, m.Err)
	}
	return fmt.Sprintf("%s of %s finished in %s", m.Mode, m.StackName, elapsed)
}
