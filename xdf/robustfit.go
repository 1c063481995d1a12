package xdf

import "math"

// robustFit solves min 1/2 sum(huber(A*x - y)) for x = (a, b) via ADMM
// (spec §4.5), following the reference ADMM scheme for
// Huber-regularized least squares (Boyd et al.).
func robustFit(a design2, y []float64) (slopeA, slopeB float64) {
	const rho = 1.0
	const iters = 1000

	m00, m01, m11 := a.ata()
	aty0, aty1 := a.aty(y)
	l00, l10, l11 := cholesky2x2(m00, m01, m11)

	z := make([]float64, len(y))
	u := make([]float64, len(y))
	var cx0, cx1 float64

	for k := 0; k < iters; k++ {
		// x = solve(AtA, Aty + At(z-u))
		var r0, r1 float64
		for i := range a {
			d := z[i] - u[i]
			r0 += a[i][0] * d
			r1 += a[i][1] * d
		}
		cx0, cx1 = solveCholesky2x2(l00, l10, l11, aty0+r0, aty1+r1)

		ax := a.mulVec(cx0, cx1)
		d := make([]float64, len(y))
		for i := range y {
			d[i] = ax[i] - y[i] + u[i]
		}

		newZ := make([]float64, len(y))
		for i, di := range d {
			var tmp float64
			ad := math.Abs(di)
			if ad != 0 {
				tmp = math.Max(0, 1-(1+1/rho)/ad)
			}
			newZ[i] = rho/(1+rho)*di + 1/(1+rho)*tmp*di
		}
		newU := make([]float64, len(y))
		for i := range y {
			newU[i] = d[i] - newZ[i]
		}
		z, u = newZ, newU
	}
	return cx0, cx1
}
