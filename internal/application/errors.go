package application

import (
	"errors"

	"github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/apperr"
)

// storeErr wraps an unexpected repository failure as a Dependency error.
// The cause ends up in the logs only; clients see the generic message.
func storeErr(err error) error {
	return apperr.Wrap(apperr.KindDependency, "storage error", err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
