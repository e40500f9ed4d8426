package moderation

import "fmt"

// StoreError reports a violation store failure. Unlike gateway failures it
// is fatal to correctness (a lost counter or audit write) and is always
// propagated to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("violation store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
