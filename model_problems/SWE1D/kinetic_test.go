package SWE1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChi(t *testing.T) {
	var (
		g  = 9.81
		kf = NewKineticFlux(g, 1.e-8, 20, 256)
	)
	// Nonnegative and symmetric over the support
	for _, omega := range []float64{0, 0.1, 0.5, 1, 2, 3, 4, math.Sqrt(2 * g)} {
		assert.GreaterOrEqual(t, kf.Chi(omega), 0.)
		assert.Equal(t, kf.Chi(omega), kf.Chi(-omega))
	}
	// Compact support: zero outside |omega| <= sqrt(2g)
	edge := math.Sqrt(2 * g)
	assert.Equal(t, 0., kf.Chi(edge+1.e-12))
	assert.Equal(t, 0., kf.Chi(-edge-1.e-12))
	assert.Equal(t, 0., kf.Chi(100))
	// Peak value at omega = 0 is sqrt(2g)/(pi g)
	assert.InDelta(t, math.Sqrt(2*g)/(math.Pi*g), kf.Chi(0), 1.e-14)
}

func TestMaxwellianMoments(t *testing.T) {
	var (
		g    = 9.81
		h, u = 1.7, 0.6
		c0   = math.Sqrt(2 * g * h)
		kf   = NewKineticFlux(g, 1.e-8, math.Abs(u)+4*c0, 2048)
	)
	M := kf.Maxwellian(h, u)
	var m0, m1, m2 float64
	for i, xi := range kf.Xi {
		m0 += M[i]
		m1 += xi * M[i]
		m2 += xi * xi * M[i]
	}
	m0 *= kf.DXi
	m1 *= kf.DXi
	m2 *= kf.DXi
	// The zeroth, first and second moments reproduce the macroscopic
	// depth, discharge and momentum flux, up to quadrature truncation
	assert.InDelta(t, h, m0, 0.02)
	assert.InDelta(t, h*u, m1, 0.02)
	assert.InDelta(t, h*u*u+0.5*g*h*h, m2, 0.1)
}

func TestMaxwellianDry(t *testing.T) {
	kf := NewKineticFlux(9.81, 1.e-8, 20, 128)
	for _, h := range []float64{0, 1.e-9, 1.e-8} {
		for _, u := range []float64{0, -3, 7} {
			M := kf.Maxwellian(h, u)
			assert.Equal(t, len(kf.Xi), len(M))
			for _, m := range M {
				assert.Equal(t, 0., m)
			}
		}
	}
}

func TestFlux(t *testing.T) {
	var (
		g  = 9.81
		kf = NewKineticFlux(g, 1.e-8, 4*math.Sqrt(2*g*2), 2048)
	)
	// Consistency: equal states on both sides recover the physical flux
	{
		h, u := 1.3, 0.4
		fMass, fMom := kf.Flux(h, u, h, u)
		assert.InDelta(t, h*u, fMass, 0.02)
		assert.InDelta(t, h*u*u+0.5*g*h*h, fMom, 0.1)
	}
	// Dam-break interface: deeper left state drives rightward mass flux
	{
		fMass, _ := kf.Flux(2, 0, 1, 0)
		assert.Greater(t, fMass, 0.)
	}
	// Dry on both sides produces exactly zero flux
	{
		fMass, fMom := kf.Flux(0, 0, 0, 0)
		assert.Equal(t, 0., fMass)
		assert.Equal(t, 0., fMom)
	}
	// The fused upwind/quadrature loop matches the explicit construction
	// from the two Maxwellians
	{
		hL, uL, hR, uR := 1.8, -0.3, 0.9, 1.1
		ML := kf.Maxwellian(hL, uL)
		MR := kf.Maxwellian(hR, uR)
		var fMass, fMom float64
		for i, xi := range kf.Xi {
			m := MR[i]
			if xi >= 0 {
				m = ML[i]
			}
			fMass += xi * m
			fMom += xi * xi * m
		}
		fMass *= kf.DXi
		fMom *= kf.DXi
		gotMass, gotMom := kf.Flux(hL, uL, hR, uR)
		assert.InDelta(t, fMass, gotMass, 1.e-12)
		assert.InDelta(t, fMom, gotMom, 1.e-12)
	}
}

func TestMaxWaveSpeed(t *testing.T) {
	var (
		g  = 9.81
		kf = NewKineticFlux(g, 1.e-8, 20, 128)
		h  = []float64{1, 2, 0.5, 0}
		u  = []float64{0, -1, 3, 0}
	)
	want := 0.
	for i := range h {
		s := math.Abs(u[i]) + math.Sqrt(2*g*math.Max(h[i], 1.e-8))
		if s > want {
			want = s
		}
	}
	assert.Equal(t, want, kf.MaxWaveSpeed(h, u))
	// The dry cell contributes through the floored depth, not a NaN
	assert.False(t, math.IsNaN(kf.MaxWaveSpeed([]float64{0}, []float64{0})))
}
