package logic

import "fmt"

// StorageError marks a persistence failure for a single user. The cycle logs
// it, records it in the report and continues with the remaining users.
type StorageError struct {
	OwnerID string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for user %s: %v", e.Op, e.OwnerID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// MalformedStatError marks a stat record that cannot safely participate in a
// cycle: negative counters or a daily_stats window with index gaps. The user
// is skipped with a recorded warning.
type MalformedStatError struct {
	OwnerID string
	Reason  string
}

func (e *MalformedStatError) Error() string {
	return fmt.Sprintf("malformed stat record for user %s: %s", e.OwnerID, e.Reason)
}
