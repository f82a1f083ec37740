package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/docstruct"
)

// Status is the outcome of one job
type Status int

const (
	// StatusSucceeded means the output was written from decoded content
	StatusSucceeded Status = iota

	// StatusDegraded means the source could not be decoded and an error
	// document was written in its place
	StatusDegraded

	// StatusFailed means no output was written
	StatusFailed

	// StatusSkipped means the run was cancelled before the job started
	StatusSkipped
)

// String returns a string representation of the status
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result records the outcome of one job
type Result struct {
	Job
	Status   Status
	Warnings []docstruct.Warning
	Err      error
	Duration time.Duration
}

// Config holds configuration for a Runner
type Config struct {
	// Workers is the number of documents converted at once
	// Default: runtime.NumCPU()
	Workers int

	// Configure adjusts the converter of each source, for example to add
	// decoders or change the classifier. Nil leaves docstruct.Open's defaults.
	Configure func(*docstruct.Converter) *docstruct.Converter

	// FileMode is the permission of written files
	// Default: 0644
	FileMode os.FileMode
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		FileMode: 0o644,
	}
}

// Runner converts planned jobs over a bounded worker pool
type Runner struct {
	config Config
}

// NewRunner creates a runner with default configuration
func NewRunner() *Runner {
	return NewRunnerWithConfig(DefaultConfig())
}

// NewRunnerWithConfig creates a runner with custom configuration
func NewRunnerWithConfig(config Config) *Runner {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.FileMode == 0 {
		config.FileMode = 0o644
	}
	return &Runner{config: config}
}

// Run converts every job and reports the outcome of each, in job order.
// Failures never stop the run. Once ctx is cancelled no further jobs are
// started; jobs already running finish and the rest are marked skipped.
func (r *Runner) Run(ctx context.Context, jobs []Job) *Report {
	start := time.Now()
	results := make([]Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(r.config.Workers)

	for i, job := range jobs {
		if ctx.Err() != nil {
			for j := i; j < len(jobs); j++ {
				results[j] = Result{Job: jobs[j], Status: StatusSkipped, Err: ctx.Err()}
			}
			break
		}
		i, job := i, job
		g.Go(func() error {
			results[i] = r.runJob(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Results: results, Elapsed: time.Since(start)}
	log.Info().
		Int("succeeded", len(report.Succeeded())).
		Int("degraded", len(report.Degraded())).
		Int("failed", len(report.Failed())).
		Int("skipped", len(report.Skipped())).
		Dur("elapsed", report.Elapsed).
		Msg("batch finished")
	return report
}

func (r *Runner) runJob(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{Job: job}

	c := docstruct.Open(job.Source)
	if r.config.Configure != nil {
		c = r.config.Configure(c)
	}

	md, warnings, err := c.Markdown(ctx)
	res.Warnings = warnings
	if err == nil {
		err = r.write(job.Output, md)
	}
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		res.Status = StatusFailed
		res.Err = err
		log.Error().Err(err).Str("source", job.Source).Msg("conversion failed")
	case docstruct.HasWarning(warnings, docstruct.WarnDegraded):
		res.Status = StatusDegraded
		log.Warn().Str("source", job.Source).Str("output", job.Output).Msg("converted with errors")
	default:
		res.Status = StatusSucceeded
		log.Info().
			Str("source", job.Source).
			Str("output", job.Output).
			Dur("took", res.Duration).
			Msg("converted")
	}
	return res
}

func (r *Runner) write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), r.config.FileMode); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Report collects the results of a run
type Report struct {
	Results []Result
	Elapsed time.Duration
}

func (r *Report) filter(status Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded returns the jobs whose output was written from decoded content
func (r *Report) Succeeded() []Result { return r.filter(StatusSucceeded) }

// Degraded returns the jobs whose output is an error document
func (r *Report) Degraded() []Result { return r.filter(StatusDegraded) }

// Failed returns the jobs that produced no output
func (r *Report) Failed() []Result { return r.filter(StatusFailed) }

// Skipped returns the jobs not started because the run was cancelled
func (r *Report) Skipped() []Result { return r.filter(StatusSkipped) }

// Total returns the number of jobs in the run
func (r *Report) Total() int { return len(r.Results) }

// OK reports whether every job wrote an output file
func (r *Report) OK() bool {
	return len(r.Failed()) == 0 && len(r.Skipped()) == 0
}
