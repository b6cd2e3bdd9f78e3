package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorage(t *testing.T) {
	assert.NoError(t, Storage(nil, "load complaint"))

	cause := errors.New("connection refused")
	err := Storage(cause, "load complaint")

	assert.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "load complaint")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrAuthorization,
		ErrNotFound,
		ErrInvalidTransition,
		ErrConflict,
		ErrValidation,
		ErrStorage,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}

			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestWrappedSentinelStillMatches(t *testing.T) {
	err := fmt.Errorf("unknown department 9: %w", ErrValidation)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrAuthorization)
}
