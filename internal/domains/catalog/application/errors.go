package application

import (
	"errors"
	"fmt"

	"github.com/Sam99132/full-stack-backend/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
