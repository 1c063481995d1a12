package xdf

import "math"

// design2 is an M x 2 design matrix [1, x] used throughout this
// package for the affine fits of spec §4.4-§4.6 (clock regression and
// jitter-removal least squares both reduce to a 2-column fit).
type design2 [][2]float64

// ata returns AᵀA for a 2-column design matrix, a symmetric 2x2.
func (a design2) ata() (m00, m01, m11 float64) {
	for _, row := range a {
		m00 += row[0] * row[0]
		m01 += row[0] * row[1]
		m11 += row[1] * row[1]
	}
	return
}

// aty returns Aᵀy.
func (a design2) aty(y []float64) (b0, b1 float64) {
	for i, row := range a {
		b0 += row[0] * y[i]
		b1 += row[1] * y[i]
	}
	return
}

// mulVec returns A*x for x = (x0, x1).
func (a design2) mulVec(x0, x1 float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		out[i] = row[0]*x0 + row[1]*x1
	}
	return out
}

// cholesky2x2 factors the symmetric positive-definite 2x2 matrix
// [[m00,m01],[m01,m11]] as L*Lᵀ, returning L's three nonzero entries
// (l00, l10, l11), per spec §4.5's "Cholesky L Lᵀ = AᵀA".
func cholesky2x2(m00, m01, m11 float64) (l00, l10, l11 float64) {
	l00 = math.Sqrt(m00)
	if l00 == 0 {
		return 0, 0, math.Sqrt(m11)
	}
	l10 = m01 / l00
	l11 = math.Sqrt(math.Max(m11-l10*l10, 0))
	return
}

// solveCholesky2x2 solves (L Lᵀ) x = b given L's factorization, via
// forward then backward substitution.
func solveCholesky2x2(l00, l10, l11 float64, b0, b1 float64) (x0, x1 float64) {
	// Forward solve L y = b.
	var y0, y1 float64
	if l00 != 0 {
		y0 = b0 / l00
	}
	if l11 != 0 {
		y1 = (b1 - l10*y0) / l11
	}
	// Backward solve Lᵀ x = y.
	if l11 != 0 {
		x1 = y1 / l11
	}
	if l00 != 0 {
		x0 = (y0 - l10*x1) / l00
	}
	return
}

// median returns the median of x (copied and sorted; x is left
// unmodified).
func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sortFloat64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mad returns the median absolute deviation of x from its median med.
func mad(x []float64, med float64) float64 {
	dev := make([]float64, len(x))
	for i, v := range x {
		dev[i] = math.Abs(v - med)
	}
	return median(dev)
}

// machineEpsilon is np.finfo(float).eps: the smallest positive float
// increment above 1.0 (spec §4.4's ε), not the smallest positive
// float overall.
var machineEpsilon = math.Nextafter(1, 2) - 1

func diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	out := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		out[i-1] = x[i] - x[i-1]
	}
	return out
}

func absAll(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}

func sortFloat64s(x []float64) {
	// Insertion sort is adequate here: callers pass at most a handful
	// of clock-offset measurements or per-segment diffs, never whole
	// sample streams.
	for i := 1; i < len(x); i++ {
		v := x[i]
		j := i - 1
		for j >= 0 && x[j] > v {
			x[j+1] = x[j]
			j--
		}
		x[j+1] = v
	}
}
