package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden = errors.New("you don't have permission to perform this action")

	// ErrInfrastructure marks failures of storage or other backing services. Callers
	// should retry later rather than change their request.
	ErrInfrastructure = errors.New("service temporarily unavailable")
)

func infraError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}
