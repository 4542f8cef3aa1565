package loader

import "context"

// VerboseSink receives one informational line per successful import.
type VerboseSink func(message string)

// ErrorSink receives one record per failed import.
type ErrorSink func(failure Failure)

// Flush drains both queues on the calling goroutine.
//
// Successes are passed to verbose first, then failures to errs, each in
// the order they were enqueued. A nil sink discards its stream. Flush
// leaves both queues empty, so calling it again makes no sink calls.
func Flush(successes *Queue[Success], failures *Queue[Failure], verbose VerboseSink, errs ErrorSink) {
	for {
		s, ok := successes.TryDequeue()
		if !ok {
			break
		}
		if verbose != nil {
			verbose(s.Message)
		}
	}

	for {
		f, ok := failures.TryDequeue()
		if !ok {
			break
		}
		if errs != nil {
			errs(f)
		}
	}
}

// Summary counts the outcomes of one Import call.
type Summary struct {
	Succeeded []string
	Failed    []Failure
}

// Total returns the number of recorded outcomes.
func (s Summary) Total() int {
	return len(s.Succeeded) + len(s.Failed)
}

// HasFailures reports whether any module failed to import.
func (s Summary) HasFailures() bool {
	return len(s.Failed) > 0
}

// Import runs RunAll and then Flush, and returns what was reported.
func Import(ctx context.Context, names []string, force bool, exec Executor, verbose VerboseSink, errs ErrorSink) Summary {
	successes, failures := RunAll(ctx, names, force, exec)

	var summary Summary
	for _, s := range successes.Snapshot() {
		summary.Succeeded = append(summary.Succeeded, s.Name)
	}
	summary.Failed = failures.Snapshot()

	Flush(successes, failures, verbose, errs)
	return summary
}
