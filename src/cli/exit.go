package cli

// Documented exit codes of the command surface; success is the usual 0.
// Usage problems and validation failures exit 1, a missing argument exits
// 3, and a host library that breaks its own uniqueness invariant exits 70.
// Failing to open the config or a database is fatal initialization and
// exits 2.
const (
	ExitUsage       = 1
	ExitInit        = 2
	ExitMissingArgs = 3
	ExitInternal    = 70
)

// ExitError carries the process exit code alongside the error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitErr(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
