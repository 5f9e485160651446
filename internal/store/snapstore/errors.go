package snapstore

import (
	"errors"
	"fmt"
)

// ErrRead and related errors classify failures on the backing file.
var (
	ErrRead   = errors.New("persistence read failed")
	ErrWrite  = errors.New("persistence write failed")
	ErrDecode = errors.New("persistence decode failed")
)

// PersistenceError reports which operation failed on which file.
// Kind is one of ErrRead, ErrWrite or ErrDecode.
type PersistenceError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{e.Kind, e.Err} }
