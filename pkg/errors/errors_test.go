package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/aidirectory/aidirectory/pkg/errors"
)

func TestAmbiguousSentinel(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		assert.True(t, errors.Is(pkgerrors.ErrAmbiguous, pkgerrors.ErrAmbiguous))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("3 records held: %w", pkgerrors.ErrAmbiguous)
		assert.True(t, pkgerrors.Is(err, pkgerrors.ErrAmbiguous))
	})
}

func TestNotFoundSentinel(t *testing.T) {
	err := pkgerrors.NewNotFoundError("entity", "acme")
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
}

func TestIOErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("batch aborted: %w", pkgerrors.NewIOError("write", "/tmp/x", errors.New("disk full")))

	var ioErr *pkgerrors.IOError
	assert.True(t, pkgerrors.As(wrapped, &ioErr))
	assert.Equal(t, "write", ioErr.Operation)
}
