package footy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalerFitTransform(t *testing.T) {
	s := NewStandardScaler([]string{"a", "b"})
	matrix := [][]float64{
		{1, 10},
		{3, 20},
		{5, 30},
	}

	out, err := s.FitTransform(matrix)
	require.NoError(t, err)
	require.True(t, s.IsFitted())
	require.Len(t, out, 3)

	for c := 0; c < 2; c++ {
		sum, varSum := 0.0, 0.0
		for _, row := range out {
			sum += row[c]
		}
		mean := sum / 3
		for _, row := range out {
			d := row[c] - mean
			varSum += d * d
		}
		assert.InDelta(t, 0.0, mean, 1e-12, "Column %d not centred", c)
		assert.InDelta(t, 1.0, varSum/3, 1e-12, "Column %d not unit variance", c)
	}
}

func TestScalerConstantColumn(t *testing.T) {
	s := NewStandardScaler([]string{"a"})
	_, err := s.FitTransform([][]float64{{7}, {7}, {7}})
	require.NoError(t, err)
	// zero spread keeps a deviation of 1 so transforming centres cleanly
	assert.Equal(t, 1.0, s.Stds[0])

	out, err := s.Transform([][]float64{{7}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0][0])
}

func TestScalerConstantColumnWithRoundingResidue(t *testing.T) {
	// 1.7 is not exactly representable so the computed spread of a
	// constant column is a tiny residue, not zero
	s := NewStandardScaler([]string{"a"})
	scaled, err := s.FitTransform([][]float64{{1.7}, {1.7}, {1.7}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, s.Stds[0])
	for _, row := range scaled {
		assert.InDelta(t, 0.0, row[0], 1e-9)
	}
}

func TestScalerUnscaleInverts(t *testing.T) {
	s := NewStandardScaler([]string{"a", "b"})
	_, err := s.FitTransform([][]float64{{1, 4}, {3, 8}})
	require.NoError(t, err)

	scaled, err := s.Transform([][]float64{{2.5, 6.5}})
	require.NoError(t, err)

	back, err := s.Unscale("a", scaled[0][0])
	require.NoError(t, err)
	assert.InDelta(t, 2.5, back, 1e-12)

	back, err = s.Unscale("b", scaled[0][1])
	require.NoError(t, err)
	assert.InDelta(t, 6.5, back, 1e-12)

	_, err = s.Unscale("missing", 0)
	assert.Error(t, err)
}

func TestScalerRejectsBadInput(t *testing.T) {
	s := NewStandardScaler([]string{"a", "b"})
	require.Error(t, s.Fit(nil), "Empty matrix must not fit")
	require.Error(t, s.Fit([][]float64{{1}}), "Width mismatch must not fit")

	_, err := s.Transform([][]float64{{1, 2}})
	assert.Error(t, err, "Unfitted scaler must not transform")
}

func TestScalerStateRoundtrip(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	s := NewStandardScaler([]string{"a", "b", "c"})
	_, err := s.FitTransform([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 10},
	})
	require.NoError(t, err)
	require.NoError(t, SaveScaler(s))

	loaded, err := LoadScaler(s.Version)
	require.NoError(t, err)
	assert.True(t, loaded.IsFitted())
	assert.Equal(t, s.Columns, loaded.Columns)
	assert.Equal(t, s.Means, loaded.Means)
	assert.Equal(t, s.Stds, loaded.Stds)

	_, err = LoadScaler("no-such-version")
	assert.Error(t, err)
}

func TestSaveScalerRefusesUnfitted(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	s := NewStandardScaler([]string{"a"})
	assert.Error(t, SaveScaler(s))
}
