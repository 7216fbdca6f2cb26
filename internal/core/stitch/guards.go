package stitch

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// DeleteContext is populated by the caller after the concat process and the
// archive rename have run.
type DeleteContext struct {
	CameraID        string
	DeleteSource    bool
	ConcatSucceeded bool // process exited with status 0
	ArchiveInPlace  bool // the archive exists at its final path
}

// CanDeleteSource evaluates whether a camera's segment directory may be removed.
// Rule: only after a successful concat whose archive is in place, and only
// when source deletion is enabled.
func CanDeleteSource(ctx DeleteContext) GuardResult {
	if !ctx.DeleteSource {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("source kept for %s (--keep-source)", ctx.CameraID)}
	}
	if !ctx.ConcatSucceeded {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("source kept for %s: concat did not succeed", ctx.CameraID)}
	}
	if !ctx.ArchiveInPlace {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("source kept for %s: archive missing after concat", ctx.CameraID)}
	}
	return GuardResult{Allowed: true}
}
