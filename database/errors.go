package database

import "errors"

// Gateway errors. Driver failures are wrapped as "<sentinel>: <driver message>"
// so both the sentinel and the driver error stay reachable with errors.Is/As.
var (
	ErrConnection = errors.New("connection failed")
	ErrQuery      = errors.New("query failed")
	ErrInsert     = errors.New("insert failed")
	ErrUpdate     = errors.New("update failed")

	// ErrDelete also matches ErrQuery.
	ErrDelete error = &scopedError{msg: "delete failed", parent: ErrQuery}

	ErrEmptyCondition   = errors.New("empty WHERE condition")
	ErrNoColumns        = errors.New("no columns given")
	ErrUnsupportedValue = errors.New("unsupported value type")
)

type scopedError struct {
	msg    string
	parent error
}

func (e *scopedError) Error() string { return e.msg }

func (e *scopedError) Unwrap() error { return e.parent }
