// internal/raydium/errors.go
package raydium

import "fmt"

// ResolutionError means pool or market metadata is absent or malformed.
// Fatal: nothing has been built or broadcast.
type ResolutionError struct {
	Account string
	Message string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolution error for %s: %s: %v", e.Account, e.Message, e.Err)
	}
	return fmt.Sprintf("resolution error for %s: %s", e.Account, e.Message)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// QuoteError means the sampled reserves or fee parameters are unusable, or
// the requested mints do not both belong to the pool.
type QuoteError struct {
	Message string
	Err     error
}

func (e *QuoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("quote error: %s", e.Message)
}

func (e *QuoteError) Unwrap() error { return e.Err }

// AccountPreparationError means a token account could not be prepared:
// rent lookup failed or the seed-derived address collided.
type AccountPreparationError struct {
	Mint    string
	Message string
	Err     error
}

func (e *AccountPreparationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("account preparation error for mint %s: %s: %v", e.Mint, e.Message, e.Err)
	}
	return fmt.Sprintf("account preparation error for mint %s: %s", e.Mint, e.Message)
}

func (e *AccountPreparationError) Unwrap() error { return e.Err }

// SubmissionError means the network rejected the signed transaction. The
// attached trace holds the diagnostic simulation of the same transaction.
type SubmissionError struct {
	Err   error
	Trace *DiagnosticTrace
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission error: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// DiagnosticTrace is the read-only simulation recorded after a failed send.
type DiagnosticTrace struct {
	Logs          []string
	UnitsConsumed uint64
	// Index of the failing instruction, -1 when the simulation did not
	// attribute the failure to one.
	FailedInstruction int
	SimulationErr     interface{}
}
