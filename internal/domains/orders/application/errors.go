package application

import (
	"errors"
	"fmt"

	"github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
	"github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
)

// mapError classifies repository failures: domain failure conditions pass
// through untouched so callers can inspect them, anything else is wrapped as
// an opaque store failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var notFound *domain.ProductNotFoundError
	var shortStock *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidProductRef),
		errors.Is(err, ports.ErrNotFound),
		errors.Is(err, ports.ErrForbidden),
		errors.As(err, &notFound),
		errors.As(err, &shortStock):
		return err
	case errors.Is(err, ports.ErrStoreFailure):
		return err
	default:
		return fmt.Errorf("%w: %w", ports.ErrStoreFailure, err)
	}
}
