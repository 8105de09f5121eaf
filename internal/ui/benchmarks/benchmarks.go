// Package benchmarks provides timing estimates for provisioning phases and
// stack resources.
package benchmarks

import (
	"slices"
	"time"
)

// DefaultTimings are median phase durations from test deployments (seconds).
var DefaultTimings = map[string]int{
	"validation":     1,
	"workstation":    2,
	"images":         15,
	"infrastructure": 2,
	"deploy":         480,
	"destroy":        360,
}

// ResourceTimings are median creation times of CloudFormation resource
// types (seconds). Types not listed settle in a few seconds.
var ResourceTimings = map[string]int{
	"AWS::EC2::VPC":                           15,
	"AWS::EC2::NatGateway":                    100,
	"AWS::IAM::Role":                          20,
	"AWS::IAM::InstanceProfile":               120,
	"AWS::ElasticLoadBalancing::LoadBalancer": 30,
	"AWS::AutoScaling::AutoScalingGroup":      90,
	"AWS::Route53::RecordSet":                 45,
}

// DeployOrder is the phase sequence of a deployment.
var DeployOrder = []string{
	"validation",
	"workstation",
	"images",
	"infrastructure",
	"deploy",
}

// DestroyOrder is the phase sequence of a teardown.
var DestroyOrder = []string{
	"destroy",
}

// PhaseRecord is the observed timing of one phase. EndedAt is nil while
// the phase runs.
type PhaseRecord struct {
	Phase     string
	StartedAt time.Time
	EndedAt   *time.Time
}

// Bounds of the performance scale.
const (
	minScale = 0.6
	maxScale = 3.0
)

func expected(phase string) (time.Duration, bool) {
	secs, ok := DefaultTimings[phase]
	return time.Duration(secs) * time.Second, ok
}

// EstimateRemaining estimates the time left in order when currentPhase has
// run for phaseElapsed, scaling the benchmarks by how fast the finished
// phases in history went.
func EstimateRemaining(order []string, currentPhase string, phaseElapsed time.Duration, history []PhaseRecord) time.Duration {
	scale := PerformanceScale(currentPhase, phaseElapsed, history)
	return EstimateRemainingWithScale(order, currentPhase, phaseElapsed, history, scale)
}

// EstimateRemainingWithScale is EstimateRemaining with an explicit scale.
// The current phase contributes what is left of its scaled benchmark; later
// phases that have not finished contribute their full scaled benchmark. A
// phase outside order yields zero.
func EstimateRemainingWithScale(order []string, currentPhase string, phaseElapsed time.Duration, history []PhaseRecord, scale float64) time.Duration {
	idx := slices.Index(order, currentPhase)
	if idx < 0 {
		return 0
	}
	scaled := func(d time.Duration) time.Duration { return time.Duration(float64(d) * scale) }

	var remaining time.Duration
	if d, ok := expected(currentPhase); ok {
		remaining += max(scaled(d)-phaseElapsed, 0)
	}

	finished := make(map[string]bool, len(history))
	for _, rec := range history {
		finished[rec.Phase] = finished[rec.Phase] || rec.EndedAt != nil
	}
	for _, phase := range order[idx+1:] {
		if d, ok := expected(phase); ok && !finished[phase] {
			remaining += scaled(d)
		}
	}
	return remaining
}

// PerformanceScale is the ratio of observed to benchmarked time over the
// finished phases, clamped to [0.6, 3.0]. A running phase that already
// overran its benchmark is counted too. Without data the scale is 1.
func PerformanceScale(currentPhase string, phaseElapsed time.Duration, history []PhaseRecord) float64 {
	var want, got time.Duration
	for _, rec := range history {
		d, ok := expected(rec.Phase)
		if !ok || rec.EndedAt == nil {
			continue
		}
		want += d
		got += rec.EndedAt.Sub(rec.StartedAt)
	}
	if d, ok := expected(currentPhase); ok && phaseElapsed > d {
		want += d
		got += phaseElapsed
	}

	if want == 0 || got == 0 {
		return 1.0
	}
	return min(max(float64(got)/float64(want), minScale), maxScale)
}

// ResourceExpectedDuration returns the benchmark of a CloudFormation
// resource type.
func ResourceExpectedDuration(resourceType string) (time.Duration, bool) {
	secs, ok := ResourceTimings[resourceType]
	return time.Duration(secs) * time.Second, ok
}

// TotalEstimate sums the benchmarks of the phases in order.
func TotalEstimate(order []string) time.Duration {
	var total time.Duration
	for _, phase := range order {
		d, _ := expected(phase)
		total += d
	}
	return total
}
