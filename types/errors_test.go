package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrPlaneImport(t *testing.T) {
	t.Parallel()

	cause := errors.New("EGL_BAD_MATCH")
	err := fmt.Errorf("update: %w", ErrPlaneImport{Plane: 1, Err: cause})
	require.ErrorIs(t, err, ErrImportFailed)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "plane #1")

	var planeErr ErrPlaneImport
	require.True(t, errors.As(err, &planeErr))
	require.Equal(t, 1, planeErr.Plane)

	require.ErrorIs(t, ErrPlaneImport{Plane: 0}, ErrImportFailed)
}

func TestIsDecline(t *testing.T) {
	t.Parallel()

	require.True(t, IsDecline(fmt.Errorf("chroma: %w", ErrNotHandled)))
	require.True(t, IsDecline(fmt.Errorf("no EGL_EXT_image_dma_buf_import: %w", ErrUnsupported)))
	require.False(t, IsDecline(ErrNoMem))
	require.False(t, IsDecline(ErrPlaneImport{Plane: 2}))
}
