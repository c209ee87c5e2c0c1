// Package outcome tags best-effort storage operations as Ok or Degraded.
//
// Non-critical persistence paths (dynamic decomposition lookup, candidate
// registration, signal inserts) must not abort a batch when storage is
// unreachable. Instead of suppressing the error invisibly, those paths
// return an Outcome so callers and tests can observe the degraded state.
package outcome

// Outcome is the result tag for a best-effort operation.
type Outcome struct {
	Degraded bool
	Err      error // underlying cause when Degraded; nil otherwise
}

// Ok returns a healthy outcome.
func Ok() Outcome { return Outcome{} }

// Degraded returns an outcome carrying the swallowed storage error.
func Degraded(err error) Outcome { return Outcome{Degraded: true, Err: err} }

// Merge combines two outcomes; the result is degraded if either was, keeping
// the first error seen.
func Merge(a, b Outcome) Outcome {
	if a.Degraded {
		return a
	}
	return b
}
