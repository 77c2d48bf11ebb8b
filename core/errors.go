package core

import "fmt"

// UnresolvableAgencyError is reported when a worker has no agency in their
// timesheet history and no agency on an existing wage rate record. Batch
// reconciliation records it per worker and keeps going.
type UnresolvableAgencyError struct {
	WorkerID string
}

func (e *UnresolvableAgencyError) Error() string {
	return fmt.Sprintf("cannot determine agency for worker %s", e.WorkerID)
}

// UnknownPositionError is returned by the rate table for a position outside
// the known set. Normal flow normalizes first, so this only fires on direct
// misuse of the table.
type UnknownPositionError struct {
	Position string
}

func (e *UnknownPositionError) Error() string {
	return fmt.Sprintf("unknown position: %s", e.Position)
}
