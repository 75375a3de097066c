package main

import (
	"errors"

	"pms/internal/domain"
)

// Exit codes
const (
	exitFailure    = 1
	exitValidation = 2
	exitNotFound   = 3
	exitDuplicate  = 4
)

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return exitValidation
	case errors.Is(err, domain.ErrNotFound):
		return exitNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return exitDuplicate
	default:
		return exitFailure
	}
}

// describe prefixes err with its class so users can tell a rejected
// request from a failure
func describe(err error) string {
	switch exitCode(err) {
	case exitValidation:
		return "rejected: " + err.Error()
	case exitNotFound:
		return "not found: " + err.Error()
	case exitDuplicate:
		return "already exists: " + err.Error()
	default:
		return err.Error()
	}
}
