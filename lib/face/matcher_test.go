package face

import (
	"testing"

	apperrors "employee-management-backend/lib/utils/app-errors"

	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	distance, err := Distance([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	require.InDelta(t, 5.0, distance, 1e-9)

	_, err = Distance([]float64{1, 2}, []float64{1})
	require.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = Distance(nil, []float64{1})
	require.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestCompare(t *testing.T) {
	known := []float64{0.1, 0.2, 0.3}
	result, err := Compare(known, []float64{0.1, 0.2, 0.3}, 0.6)
	require.NoError(t, err)
	require.True(t, result.Matched)
	require.Zero(t, result.Distance)

	result, err = Compare(known, []float64{0.1, 0.2, 0.9}, 0.6)
	require.NoError(t, err)
	require.True(t, result.Matched, "distance equal to threshold matches")

	result, err = Compare(known, []float64{0.1, 0.2, 1.0}, 0.6)
	require.NoError(t, err)
	require.False(t, result.Matched)
}
