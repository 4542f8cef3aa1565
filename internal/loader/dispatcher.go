package loader

import (
	"context"
	"fmt"
	"sync"
)

// RunAll imports every name concurrently and returns the buffered outcomes.
//
// One goroutine is started per name, duplicates included, and each calls
// exec.Execute(ctx, name, force). A nil error is recorded as a Success.
// Anything else is recorded as a Failure, including a panic or a call that
// ends its goroutine early. RunAll never returns an error and does not
// return until every goroutine has recorded its outcome, so the queue
// lengths always add up to len(names).
//
// ctx is handed to the executor as is. RunAll does not cancel tasks or
// stop waiting when ctx is done; bounding each call is the executor's job.
func RunAll(ctx context.Context, names []string, force bool, exec Executor) (*Queue[Success], *Queue[Failure]) {
	successes := NewQueue[Success]()
	failures := NewQueue[Failure]()

	if len(names) == 0 {
		return successes, failures
	}

	var wg sync.WaitGroup
	wg.Add(len(names))
	for _, name := range names {
		go func() {
			defer wg.Done()
			recorded := false
			defer func() {
				if !recorded {
					failures.Enqueue(newFailure(name, ErrExecutorExited))
				}
			}()

			switch o := execute(ctx, exec, name, force).(type) {
			case Success:
				successes.Enqueue(o)
			case Failure:
				failures.Enqueue(o)
			}
			recorded = true
		}()
	}
	wg.Wait()

	return successes, failures
}

// execute runs a single import and converts its result, including a panic,
// into exactly one Outcome.
func execute(ctx context.Context, exec Executor, name string, force bool) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = newFailure(name, fmt.Errorf("%w: %v", ErrExecutorPanic, r))
		}
	}()

	if err := exec.Execute(ctx, name, force); err != nil {
		return newFailure(name, err)
	}
	return newSuccess(name)
}
