package client

import (
	"errors"
	"fmt"
)

// ErrNoTarget is returned by Send when the configuration names neither a
// socket path nor a network address.
var ErrNoTarget = errors.New("client: no socket path or network address configured")

// ConnectionError reports a failure to reach the service.
type ConnectionError struct {
	Network string
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("client: unable to connect to %s %s: %v", e.Network, e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IOError reports a failed write or read on an established connection.
type IOError struct {
	Op  string // "write" or "read"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("client: %s failed: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
