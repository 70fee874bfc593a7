package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"magic wraps format", ErrInvalidMagic, ErrFormat},
		{"version wraps format", ErrInvalidVersion, ErrFormat},
		{"nesting wraps format", ErrNestedTooDeep, ErrFormat},
		{"declared size wraps truncation", ErrDeclaredSizeExceedsBuffer, ErrTruncation},
		{"corrupt stream wraps compression", ErrCorruptStream, ErrCompression},
		{"missing resource wraps not-found", ErrResourceNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.category)
		})
	}
}

func TestWrappedContextKeepsSentinel(t *testing.T) {
	err := fmt.Errorf("%w: resource 0x%X", ErrResourceNotFound, 0x105)
	require.ErrorIs(t, err, ErrResourceNotFound)
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrFormat)
}

func TestTruncated(t *testing.T) {
	err := Truncated("resource table", 48, 800, 100)

	require.ErrorIs(t, err, ErrTruncation)
	require.ErrorIs(t, err, ErrDeclaredSizeExceedsBuffer)
	require.Contains(t, err.Error(), "resource table")
	require.Contains(t, err.Error(), "800")
	require.Contains(t, err.Error(), "100")
}

func TestCategoriesAreDistinct(t *testing.T) {
	categories := []error{ErrFormat, ErrTruncation, ErrCompression, ErrNotFound}
	for i, a := range categories {
		for j, b := range categories {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
