package loader

import (
	"context"
	"errors"
	"fmt"
)

// ErrorID identifies failures recorded by the dispatcher.
const ErrorID = "AsyncModuleImportError"

// Category classifies a recorded failure.
type Category string

// CategoryOperationStopped is the category of every import failure.
const CategoryOperationStopped Category = "OperationStopped"

// ErrExecutorPanic wraps a panic recovered from an executor call.
var ErrExecutorPanic = errors.New("executor panicked")

// ErrExecutorExited is recorded when an executor call ends its goroutine
// without returning, for example through runtime.Goexit.
var ErrExecutorExited = errors.New("executor exited without returning")

// Executor performs the import of a single module.
//
// Execute is called concurrently from many goroutines against the same
// Executor, so implementations must do their own locking.
type Executor interface {
	Execute(ctx context.Context, name string, force bool) error
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, name string, force bool) error

// Execute calls f(ctx, name, force).
func (f ExecutorFunc) Execute(ctx context.Context, name string, force bool) error {
	return f(ctx, name, force)
}

// Outcome is the result of importing one module: either Success or Failure.
type Outcome interface {
	ModuleName() string
	outcome()
}

// Success records a completed import.
type Success struct {
	Name    string
	Message string
}

// ModuleName returns the name of the imported module.
func (s Success) ModuleName() string { return s.Name }

func (Success) outcome() {}

// Failure records an import that returned an error or panicked.
type Failure struct {
	Name     string
	ID       string
	Category Category
	Err      error
}

// ModuleName returns the name of the module that failed.
func (f Failure) ModuleName() string { return f.Name }

func (Failure) outcome() {}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): module %q: %v", f.ID, f.Category, f.Name, f.Err)
}

// Unwrap returns the underlying cause.
func (f Failure) Unwrap() error {
	return f.Err
}

func newSuccess(name string) Success {
	return Success{
		Name:    name,
		Message: fmt.Sprintf("Successfully imported module: %s", name),
	}
}

func newFailure(name string, err error) Failure {
	return Failure{
		Name:     name,
		ID:       ErrorID,
		Category: CategoryOperationStopped,
		Err:      err,
	}
}
