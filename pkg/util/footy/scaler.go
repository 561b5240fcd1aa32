package footy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

/////////////////////////////////////////////////////////////////////////
////// Standard Scaler
/////////////////////////////////////////////////////////////////////////

// StandardScaler standardises feature columns to zero mean and unit variance.
// The fitted means and deviations are part of the snapshot: predictions made
// against scaled feature rows are meaningless under a different fit, so the
// state is persisted alongside the rows and never silently re-derived.
type StandardScaler struct {
	Version string
	Columns []string
	Means   []float64
	Stds    []float64
	fitted  bool
}

// NewStandardScaler creates an unfitted scaler over the named columns
func NewStandardScaler(columns []string) *StandardScaler {
	return &StandardScaler{
		Version: Config.ScalerVersion,
		Columns: columns,
	}
}

// IsFitted returns true once Fit has succeeded
func (s *StandardScaler) IsFitted() bool {
	return s.fitted
}

// Fit computes per-column mean and population standard deviation.
// Columns with no variance keep a deviation of 1 so transforming them
// centres without exploding.
func (s *StandardScaler) Fit(matrix [][]float64) error {
	if len(matrix) == 0 {
		return fmt.Errorf("cannot fit scaler on an empty matrix")
	}
	width := len(s.Columns)
	for i, row := range matrix {
		if len(row) != width {
			return fmt.Errorf("row %d has %d values, scaler expects %d", i, len(row), width)
		}
	}

	n := float64(len(matrix))
	s.Means = make([]float64, width)
	s.Stds = make([]float64, width)

	for c := 0; c < width; c++ {
		sum := 0.0
		for _, row := range matrix {
			sum += row[c]
		}
		mean := sum / n

		varSum := 0.0
		for _, row := range matrix {
			d := row[c] - mean
			varSum += d * d
		}
		// constant columns leave rounding residue rather than an exact
		// zero, so the guard needs a tolerance
		std := math.Sqrt(varSum / n)
		if std < 1e-12 {
			std = 1.0
		}

		s.Means[c] = mean
		s.Stds[c] = std
	}

	s.fitted = true
	return nil
}

// Transform standardises the matrix in a new allocation
func (s *StandardScaler) Transform(matrix [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("scaler has not been fitted")
	}
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		if len(row) != len(s.Columns) {
			return nil, fmt.Errorf("row %d has %d values, scaler expects %d", i, len(row), len(s.Columns))
		}
		scaled := make([]float64, len(row))
		for c, v := range row {
			scaled[c] = (v - s.Means[c]) / s.Stds[c]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler then transforms the same matrix
func (s *StandardScaler) FitTransform(matrix [][]float64) ([][]float64, error) {
	if err := s.Fit(matrix); err != nil {
		return nil, err
	}
	return s.Transform(matrix)
}

// columnIndex locates a column by name, -1 when absent
func (s *StandardScaler) columnIndex(column string) int {
	for i, c := range s.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Unscale maps a single standardised value back into its original units
func (s *StandardScaler) Unscale(column string, scaled float64) (float64, error) {
	if !s.fitted {
		return 0, fmt.Errorf("scaler has not been fitted")
	}
	i := s.columnIndex(column)
	if i < 0 {
		return 0, fmt.Errorf("unknown scaler column: %s", column)
	}
	return scaled*s.Stds[i] + s.Means[i], nil
}

/////////////////////////////////////////////////////////////////////////
////// Persisted Scaler State
/////////////////////////////////////////////////////////////////////////

// Compile-time check to ensure ScalerState implements Persistable interface
var _ Persistable = (*ScalerState)(nil)

// ScalerState is the database representation of a fitted scaler.
// Columns, means and deviations are stored as comma separated lists.
type ScalerState struct {
	Version   string    `json:"version" column:"version" dbtype:"TEXT" primary:"true"`
	Columns   string    `json:"columns" column:"columns" dbtype:"TEXT NOT NULL"`
	Means     string    `json:"means" column:"means" dbtype:"TEXT NOT NULL"`
	Stds      string    `json:"stds" column:"stds" dbtype:"TEXT NOT NULL"`
	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// GetPrimaryKey returns the primary key as a map
func (ss *ScalerState) GetPrimaryKey() map[string]interface{} {
	return map[string]any{
		"version": ss.Version,
	}
}

// GetTableName returns the table name for scaler state
func (ss *ScalerState) GetTableName() string {
	return "scaler_state"
}

// BeforeSave is called before saving the scaler state
func (ss *ScalerState) BeforeSave() error {
	if ss.Version == "" {
		return fmt.Errorf("scaler state has no version")
	}
	now := time.Now()
	if ss.CreatedAt.IsZero() {
		ss.CreatedAt = now
	}
	ss.UpdatedAt = now
	return nil
}

// SaveScaler persists a fitted scaler under its version
func SaveScaler(s *StandardScaler) error {
	if !s.fitted {
		return fmt.Errorf("refusing to persist an unfitted scaler")
	}
	state := &ScalerState{
		Version: s.Version,
		Columns: strings.Join(s.Columns, ","),
		Means:   joinFloats(s.Means),
		Stds:    joinFloats(s.Stds),
	}
	return Save(state)
}

// LoadScaler rehydrates the fitted scaler persisted under the given version
func LoadScaler(version string) (*StandardScaler, error) {
	state := &ScalerState{}
	err := FindByPrimaryKey(state, map[string]any{"version": version})
	if err != nil {
		return nil, fmt.Errorf("no scaler state for version %s: %w", version, err)
	}

	columns := strings.Split(state.Columns, ",")
	means, err := splitFloats(state.Means)
	if err != nil {
		return nil, fmt.Errorf("corrupt scaler means for version %s: %w", version, err)
	}
	stds, err := splitFloats(state.Stds)
	if err != nil {
		return nil, fmt.Errorf("corrupt scaler stds for version %s: %w", version, err)
	}
	if len(means) != len(columns) || len(stds) != len(columns) {
		return nil, fmt.Errorf("scaler state for version %s is inconsistent", version)
	}

	return &StandardScaler{
		Version: version,
		Columns: columns,
		Means:   means,
		Stds:    stds,
		fitted:  true,
	}, nil
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func splitFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
