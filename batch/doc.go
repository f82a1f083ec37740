// Package batch converts many sources in one run.
//
// Discover finds candidate files under a directory, Plan assigns each one an
// output path, and a Runner converts the planned jobs over a bounded pool of
// workers. Output paths are fixed before any worker starts, so workers share
// no mutable state. Every job is independent: an unsupported or unreadable
// file is recorded in the Report and the run continues.
//
// Basic usage:
//
//	sources, err := batch.Discover("manuals", true, nil)
//	if err != nil {
//	    // handle error
//	}
//	jobs := batch.Plan("manuals", sources, "converted_markdown")
//	report := batch.NewRunner().Run(ctx, jobs)
//	fmt.Printf("%d succeeded, %d failed\n", len(report.Succeeded()), len(report.Failed()))
package batch
