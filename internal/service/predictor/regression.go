package predictor

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// standardScaler centers and scales feature columns to zero mean and
// unit variance. Parameters are fit on one call's data only, never
// updated incrementally. Zero-variance columns scale by 1 so constant
// features pass through centred instead of dividing by zero.
type standardScaler struct {
	mean  []float64
	scale []float64
}

func (s *standardScaler) fit(features [][]float64) error {
	if len(features) == 0 {
		return errors.New("scaler: empty feature matrix")
	}
	cols := len(features[0])
	col := make([]float64, len(features))
	s.mean = make([]float64, cols)
	s.scale = make([]float64, cols)
	for j := 0; j < cols; j++ {
		for i, row := range features {
			if len(row) != cols {
				return fmt.Errorf("scaler: ragged row %d", i)
			}
			col[i] = row[j]
		}
		s.mean[j] = stat.Mean(col, nil)
		sd := stat.PopStdDev(col, nil)
		if sd == 0 || math.IsNaN(sd) {
			sd = 1
		}
		s.scale[j] = sd
	}
	return nil
}

func (s *standardScaler) transform(features [][]float64) ([][]float64, error) {
	out := make([][]float64, len(features))
	for i, row := range features {
		scaled, err := s.transformRow(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}

func (s *standardScaler) transformRow(row []float64) ([]float64, error) {
	if len(row) != len(s.mean) {
		return nil, fmt.Errorf("scaler: want %d features, got %d", len(s.mean), len(row))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.mean[j]) / s.scale[j]
	}
	return out, nil
}

// linearModel is an ordinary least squares fit with intercept.
type linearModel struct {
	coef      []float64
	intercept float64
}

// fit solves min |Xb - y| over the given rows. The design matrix gets a
// leading ones column for the intercept. SVD least squares yields the
// minimum-norm solution even when the design is rank deficient, which
// happens routinely with tiny training sets or constant feature columns.
func (m *linearModel) fit(features [][]float64, targets []float64) error {
	rows := len(features)
	if rows == 0 || rows != len(targets) {
		return fmt.Errorf("regression: %d feature rows for %d targets", rows, len(targets))
	}
	cols := len(features[0])

	design := mat.NewDense(rows, cols+1, nil)
	for i, row := range features {
		if len(row) != cols {
			return fmt.Errorf("regression: ragged row %d", i)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	y := mat.NewVecDense(rows, append([]float64(nil), targets...))

	var svd mat.SVD
	if !svd.Factorize(design, mat.SVDThin) {
		return errors.New("regression: svd factorization failed")
	}
	rank := svd.Rank(1e-15)
	if rank == 0 {
		return errors.New("regression: zero-rank design matrix")
	}
	var beta mat.VecDense
	svd.SolveVecTo(&beta, y, rank)

	m.intercept = beta.AtVec(0)
	m.coef = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.coef[j] = beta.AtVec(j + 1)
	}
	for _, v := range append([]float64{m.intercept}, m.coef...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("regression: non-finite coefficients")
		}
	}
	return nil
}

func (m *linearModel) predict(row []float64) (float64, error) {
	if len(row) != len(m.coef) {
		return 0, fmt.Errorf("regression: want %d features, got %d", len(m.coef), len(row))
	}
	v := m.intercept
	for j, x := range row {
		v += m.coef[j] * x
	}
	return v, nil
}

// trainTestSplit shuffles row indices with a fixed seed and carves off a
// test partition of ceil(n*testFraction) rows, keeping at least one row
// on each side. The fixed seed makes every retrain reproducible.
func trainTestSplit(n int, testFraction float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}
	return perm[nTest:], perm[:nTest]
}

func meanSquaredError(targets, preds []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	var sum float64
	for i := range targets {
		d := targets[i] - preds[i]
		sum += d * d
	}
	return sum / float64(len(targets))
}

// r2Score is the coefficient of determination. A constant target has no
// variance to explain, so it scores 1 for an exact fit and 0 otherwise.
func r2Score(targets, preds []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	meanY := stat.Mean(targets, nil)
	var ssRes, ssTot float64
	for i := range targets {
		d := targets[i] - preds[i]
		ssRes += d * d
		t := targets[i] - meanY
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
