package SWE1D

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// KineticFlux holds the fixed kinetic velocity grid and the constants
// needed to evaluate Maxwellian moments. The grid is quadrature
// scaffolding, not part of the physical state: it is built once and its
// range must dominate the fastest physical wave speed for the whole run.
type KineticFlux struct {
	Gravity, HEps float64
	Xi            []float64 // Symmetric grid over [-XiMax, XiMax]
	DXi           float64
}

func NewKineticFlux(gravity, hEps, xiMax float64, nXi int) (kf *KineticFlux) {
	kf = &KineticFlux{
		Gravity: gravity,
		HEps:    hEps,
		Xi:      make([]float64, nXi),
	}
	floats.Span(kf.Xi, -xiMax, xiMax)
	kf.DXi = kf.Xi[1] - kf.Xi[0]
	return
}

// Chi is the weight kernel defining the kinetic Maxwellian:
//
//	chi(omega) = (1/(pi g)) * sqrt(max(0, 2g - omega^2))
//
// It is nonnegative, symmetric and compactly supported on
// |omega| <= sqrt(2g); these three properties make the Maxwellian
// moments reproduce the shallow water mass and momentum fluxes.
func (kf *KineticFlux) Chi(omega float64) (chi float64) {
	inside := 2.*kf.Gravity - omega*omega
	if inside <= 0 {
		return
	}
	chi = math.Sqrt(inside) / (math.Pi * kf.Gravity)
	return
}

// Maxwellian maps a macroscopic cell state (h, u) to the kinetic
// distribution M(h,u;xi) = sqrt(h) * chi((xi-u)/sqrt(h)) on the grid.
// Near-dry cells (h <= HEps) map to the zero vector so the omega
// argument never divides by zero.
func (kf *KineticFlux) Maxwellian(h, u float64) (M []float64) {
	M = make([]float64, len(kf.Xi))
	if h <= kf.HEps {
		return
	}
	sqrtH := math.Sqrt(h)
	for i, xi := range kf.Xi {
		M[i] = sqrtH * kf.Chi((xi-u)/sqrtH)
	}
	return
}

// Flux computes the numerical interface flux pair by upwinding in
// kinetic space: positive xi transports the left state, negative xi the
// right state. The first and second xi-moments of the upwinded
// distribution are taken by rectangle quadrature:
//
//	fMass approximates h u
//	fMom  approximates h u^2 + (1/2) g h^2
//
// The upwind select and the quadrature sum are fused into one pass over
// the grid, so calls are allocation free and safe to run concurrently
// across interfaces.
func (kf *KineticFlux) Flux(hL, uL, hR, uR float64) (fMass, fMom float64) {
	var (
		sqrtHL, sqrtHR float64
		wetL, wetR     = hL > kf.HEps, hR > kf.HEps
	)
	if wetL {
		sqrtHL = math.Sqrt(hL)
	}
	if wetR {
		sqrtHR = math.Sqrt(hR)
	}
	for _, xi := range kf.Xi {
		var m float64
		if xi >= 0 {
			if wetL {
				m = sqrtHL * kf.Chi((xi-uL)/sqrtHL)
			}
		} else {
			if wetR {
				m = sqrtHR * kf.Chi((xi-uR)/sqrtHR)
			}
		}
		fMass += xi * m
		fMom += xi * xi * m
	}
	fMass *= kf.DXi
	fMom *= kf.DXi
	return
}

// MaxWaveSpeed scans the whole field for the largest |u| + sqrt(2 g h),
// the bound used by the CFL time step selection.
func (kf *KineticFlux) MaxWaveSpeed(h, u []float64) (sMax float64) {
	for i, hi := range h {
		s := math.Abs(u[i]) + math.Sqrt(2.*kf.Gravity*math.Max(hi, kf.HEps))
		if s > sMax {
			sMax = s
		}
	}
	return
}
