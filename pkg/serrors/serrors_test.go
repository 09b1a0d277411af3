package serrors_test

import (
	"errors"
	"pycheck/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrToolNotFound,
		serrors.ErrTimeout,
		serrors.ErrCanceled,
		serrors.ErrBadConfig,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	require.NotEqual(t, serrors.ErrToolNotFound, serrors.ErrTimeout, "ToolNotFound should not equal Timeout")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("exec failed")

	e1 := serrors.With(serrors.ErrToolNotFound, "checker %q not found", "mypy")
	require.Equal(t, `checker "mypy" not found`, e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrToolNotFound, base, "starting checker")
	require.Equal(t, "starting checker: exec failed", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrToolNotFound)
	require.Equal(t, "TOOL_NOT_FOUND", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrTimeout, base, "running")

	require.ErrorIs(t, e, serrors.ErrTimeout)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrCanceled, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrTimeout, base, "running")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrTimeout, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrBadConfig, base, "no checkers")
	require.Equal(t, serrors.ErrBadConfig, e.Kind())
	require.Equal(t, "no checkers", e.Message())
	require.Equal(t, base, e.Cause())
}
