package image

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/util/async"
	"github.com/napo-io/k8sway/internal/util/retry"
)

// DefaultConcurrency is the number of regions queried at once.
const DefaultConcurrency = 8

// Query selects the images to resolve.
type Query struct {
	NamePattern  string
	Owner        string
	Architecture string
}

func (q Query) filter() aws.ImageFilter {
	return aws.ImageFilter{
		NamePattern:  q.NamePattern,
		Owner:        q.Owner,
		Architecture: q.Architecture,
	}
}

// RegionResult is the outcome of resolving a single region.
type RegionResult struct {
	Region   string
	Image    aws.Image
	Err      error
	Duration time.Duration
}

// Result holds the outcome of a Resolve call.
type Result struct {
	// Mapping contains every region that resolved.
	Mapping *Mapping

	regions  []string
	selected map[string]aws.Image
	failures map[string]error
}

// Regions returns the regions that were queried, in query order.
func (r *Result) Regions() []string {
	return append([]string(nil), r.regions...)
}

// Image returns the selected image for region.
func (r *Result) Image(region string) (aws.Image, bool) {
	img, ok := r.selected[region]
	return img, ok
}

// Failures returns the error of every region that did not resolve.
func (r *Result) Failures() map[string]error {
	out := make(map[string]error, len(r.failures))
	for region, err := range r.failures {
		out[region] = err
	}
	return out
}

// Err joins every region failure in query order. It is nil when all
// regions resolved.
func (r *Result) Err() error {
	var errs []error
	for _, region := range r.regions {
		if err, ok := r.failures[region]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Require returns the failure recorded for region, or an error if the
// region was never queried.
func (r *Result) Require(region string) error {
	if err, ok := r.failures[region]; ok {
		return err
	}
	if _, ok := r.selected[region]; !ok {
		return fmt.Errorf("region %s was not part of the image lookup", region)
	}
	return nil
}

// Resolver resolves the newest image per region.
type Resolver struct {
	finder      aws.ImageFinder
	lister      aws.RegionLister
	concurrency int
	retryOpts   []retry.Option
	metrics     *Metrics
	onRegion    func(RegionResult)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRegionLister enables region discovery when Resolve is given no regions.
func WithRegionLister(l aws.RegionLister) Option {
	return func(r *Resolver) {
		r.lister = l
	}
}

// WithConcurrency bounds the number of regions queried at once.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithRetry sets the backoff used for throttled calls.
func WithRetry(opts ...retry.Option) Option {
	return func(r *Resolver) {
		r.retryOpts = opts
	}
}

// WithMetrics records lookup metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithProgress registers a callback invoked once per region as it finishes.
// It may be called from several goroutines at once.
func WithProgress(fn func(RegionResult)) Option {
	return func(r *Resolver) {
		r.onRegion = fn
	}
}

// NewResolver creates a Resolver backed by finder.
func NewResolver(finder aws.ImageFinder, opts ...Option) *Resolver {
	r := &Resolver{
		finder:      finder,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up the newest image matching q in every region. With no
// regions given, the enabled regions are listed first; a listing failure is
// returned as a *ProviderCallError with no result.
//
// Otherwise the result is always returned. The error joins every per-region
// failure and is nil when all regions resolved.
func (r *Resolver) Resolve(ctx context.Context, regions []string, q Query) (*Result, error) {
	if len(regions) == 0 {
		if r.lister == nil {
			return nil, errors.New("no regions given and region discovery is not configured")
		}
		listed, err := r.lister.ListRegions(ctx)
		if err != nil {
			return nil, &ProviderCallError{Operation: "DescribeRegions", Err: err}
		}
		regions = listed
	}
	regions = dedupe(regions)

	slots := make([]RegionResult, len(regions))
	tasks := make([]async.Task, len(regions))
	for i, region := range regions {
		tasks[i] = async.Task{
			Name: region,
			Func: func(ctx context.Context) error {
				slots[i] = r.resolveRegion(ctx, region, q)
				return slots[i].Err
			},
		}
	}
	// Failures are collected from the slots below.
	_ = async.RunBounded(ctx, tasks, r.concurrency)

	res := &Result{
		regions:  regions,
		selected: make(map[string]aws.Image),
		failures: make(map[string]error),
	}
	found := make(map[string]string)
	for i, region := range regions {
		slot := slots[i]
		switch {
		case slot.Region == "":
			// Skipped because the context ended before the task started.
			res.failures[region] = &ProviderCallError{Region: region, Operation: "DescribeImages", Err: ctx.Err()}
		case slot.Err != nil:
			res.failures[region] = slot.Err
		default:
			res.selected[region] = slot.Image
			found[region] = slot.Image.ID
		}
	}
	res.Mapping = NewMapping(found)

	return res, res.Err()
}

func (r *Resolver) resolveRegion(ctx context.Context, region string, q Query) RegionResult {
	start := time.Now()
	out := RegionResult{Region: region}

	var candidates []aws.Image
	opts := append([]retry.Option{retry.WithRetryIf(aws.IsThrottled)}, r.retryOpts...)
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		candidates, err = r.finder.DescribeImages(ctx, region, q.filter())
		return err
	}, opts...)

	outcome := OutcomeFound
	switch {
	case err != nil:
		out.Err = &ProviderCallError{Region: region, Operation: "DescribeImages", Err: err}
		outcome = OutcomeError
	default:
		img, ok := Newest(candidates)
		if !ok {
			out.Err = &NoImageError{Region: region, NamePattern: q.NamePattern}
			outcome = OutcomeNoImage
		} else {
			out.Image = img
		}
	}

	out.Duration = time.Since(start)
	r.metrics.record(region, outcome, out.Duration)
	if r.onRegion != nil {
		r.onRegion(out)
	}
	return out
}

func dedupe(regions []string) []string {
	seen := make(map[string]bool, len(regions))
	out := make([]string, 0, len(regions))
	for _, region := range regions {
		if region == "" || seen[region] {
			continue
		}
		seen[region] = true
		out = append(out, region)
	}
	return out
}
