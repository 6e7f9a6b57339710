package SWE1D

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"gonum.org/v1/gonum/floats"

	"github.com/Anenin41/Thesis-Public/InputParameters"
	"github.com/Anenin41/Thesis-Public/utils"
)

// SWE solves the 1D shallow water equations with a rainfall/infiltration
// recharge source:
//
//	dt(h)  + dx(h u)                    = S
//	dt(hu) + dx(h u^2 + (1/2) g h^2)    = -g h dx(Z) + S u
//
// using a first order finite volume scheme whose interface fluxes come
// from kinetic flux splitting, advanced by an explicit CFL-limited Euler
// step. Reflective walls close both ends of the domain.
type SWE struct {
	// Input parameters
	CFL, FinalTime float64
	Gravity, HEps  float64
	N              int
	Length, DX     float64
	RainRate       float64
	XiFactor       float64
	NXi            int
	LogFrequency   int
	MaxSteps       int
	X, Z           []float64 // Cell centers and bed elevation
	H, HU          []float64 // Depth and discharge cell averages
	Rain, Infil    []float64 // Recharge is S = Rain - Infil
	KF             *KineticFlux
	Partitions     *utils.PartitionMap
	// Monitor, when set, is invoked every LogFrequency steps. Purely a
	// presentation hook, it has no numerical effect.
	Monitor        func(tstep int, time, dt float64)
	u              []float64 // Scratch: velocity derived each step
	hPad, uPad     []float64 // Scratch: state padded with ghost cells
	fMass, fMom    []float64 // Scratch: N+1 interface fluxes
	dZdx           []float64
	plotOnce       sync.Once
	chart          *chart2d.Chart2D
	colorMap       *utils2.ColorMap
}

func NewSWE(ip *InputParameters.InputParameters1D) (c *SWE, err error) {
	switch {
	case ip.N <= 0:
		err = fmt.Errorf("cell count must be positive, got %d", ip.N)
	case ip.Length <= 0:
		err = fmt.Errorf("domain length must be positive, got %g", ip.Length)
	case ip.FinalTime < 0:
		err = fmt.Errorf("final time must be nonnegative, got %g", ip.FinalTime)
	case ip.CFL <= 0 || ip.CFL > 1:
		err = fmt.Errorf("CFL must lie in (0,1], got %g", ip.CFL)
	case ip.Gravity <= 0:
		err = fmt.Errorf("gravity must be positive, got %g", ip.Gravity)
	case ip.XiFactor <= 0:
		err = fmt.Errorf("kinetic grid factor must be positive, got %g", ip.XiFactor)
	case ip.NXi <= 1:
		err = fmt.Errorf("kinetic grid needs at least 2 points, got %d", ip.NXi)
	case ip.HEps <= 0:
		err = fmt.Errorf("dry-cell threshold must be positive, got %g", ip.HEps)
	}
	if err != nil {
		return
	}
	c = &SWE{
		CFL:          ip.CFL,
		FinalTime:    ip.FinalTime,
		Gravity:      ip.Gravity,
		HEps:         ip.HEps,
		N:            ip.N,
		Length:       ip.Length,
		DX:           ip.Length / float64(ip.N),
		RainRate:     ip.RainRate,
		XiFactor:     ip.XiFactor,
		NXi:          ip.NXi,
		LogFrequency: ip.LogFrequency,
		MaxSteps:     ip.MaxSteps,
		X:            make([]float64, ip.N),
		Z:            make([]float64, ip.N),
		H:            make([]float64, ip.N),
		HU:           make([]float64, ip.N),
		Rain:         make([]float64, ip.N),
		Infil:        make([]float64, ip.N),
		u:            make([]float64, ip.N),
		hPad:         make([]float64, ip.N+2),
		uPad:         make([]float64, ip.N+2),
		fMass:        make([]float64, ip.N+1),
		fMom:         make([]float64, ip.N+1),
		dZdx:         make([]float64, ip.N),
	}
	if c.LogFrequency <= 0 {
		c.LogFrequency = 20
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = 10000000
	}
	for i := range c.X {
		c.X[i] = (float64(i) + 0.5) * c.DX
	}
	for i := range c.Rain {
		c.Rain[i] = ip.RainRate
	}
	c.InitializeDamBreak()
	c.BuildKineticGrid()
	c.Partitions = utils.NewPartitionMap(runtime.NumCPU(), ip.N+1)
	fmt.Printf("Shallow Water Equations in 1 Dimension\nKinetic Flux Splitting + Rainfall Recharge\n")
	fmt.Printf("CFL = %8.4f, Num Cells N = %d, Rain Rate = %8.4f\n", c.CFL, c.N, c.RainRate)
	fmt.Printf("Kinetic grid: %d points over [%8.4f, %8.4f]\n\n", c.NXi, c.KF.Xi[0], c.KF.Xi[c.NXi-1])
	return
}

// InitializeDamBreak sets the default scenario: depth 2 on the left half
// of the domain, 1 on the right, zero velocity, flat bed.
func (c *SWE) InitializeDamBreak() {
	for i, x := range c.X {
		if x < c.Length/2. {
			c.H[i] = 2.
		} else {
			c.H[i] = 1.
		}
		c.HU[i] = 0.
		c.Z[i] = 0.
	}
}

// BuildKineticGrid sizes the kinetic velocity grid from the current
// maximum depth, XiMax = XiFactor * sqrt(2 g max(h)). It is called once
// at construction; forcing that substantially raises depths later in a
// run is not re-covered, which silently degrades flux accuracy rather
// than failing. Callers replacing the initial condition should call it
// again before running.
func (c *SWE) BuildKineticGrid() {
	c0 := math.Sqrt(2. * c.Gravity * math.Max(floats.Max(c.H), c.HEps))
	c.KF = NewKineticFlux(c.Gravity, c.HEps, c.XiFactor*c0, c.NXi)
}

// Step advances the state (H, HU) by one explicit step of size dt.
// The walls are realized as ghost cells mirroring the adjacent interior
// cell with negated velocity, so one uniform interface routine covers
// all N+1 interfaces and the flux loop is branch free. Degenerate
// near-dry cells are floored and zeroed, never raised as errors.
func (c *SWE) Step(dt float64) {
	var (
		N  = c.N
		wg = sync.WaitGroup{}
	)
	for i := 0; i < N; i++ {
		c.u[i] = c.HU[i] / math.Max(c.H[i], c.HEps)
		c.hPad[i+1] = c.H[i]
		c.uPad[i+1] = c.u[i]
	}
	// Reflective ghost cells
	c.hPad[0], c.uPad[0] = c.H[0], -c.u[0]
	c.hPad[N+1], c.uPad[N+1] = c.H[N-1], -c.u[N-1]

	// Interface i sits between padded cells i and i+1. Each interface
	// depends only on its two neighbors, so the loop splits cleanly
	// across workers writing disjoint flux ranges.
	for np := 0; np < c.Partitions.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			iMin, iMax := c.Partitions.GetBucketRange(np)
			for i := iMin; i < iMax; i++ {
				c.fMass[i], c.fMom[i] = c.KF.Flux(c.hPad[i], c.uPad[i], c.hPad[i+1], c.uPad[i+1])
			}
			wg.Done()
		}(np)
	}
	wg.Wait()

	// Bed slope: central difference inside, one sided at the walls
	if N > 1 {
		for i := 1; i < N-1; i++ {
			c.dZdx[i] = (c.Z[i+1] - c.Z[i-1]) / (2. * c.DX)
		}
		c.dZdx[0] = (c.Z[1] - c.Z[0]) / c.DX
		c.dZdx[N-1] = (c.Z[N-1] - c.Z[N-2]) / c.DX
	}

	for i := 0; i < N; i++ {
		S := c.Rain[i] - c.Infil[i]
		hNew := c.H[i] - (dt/c.DX)*(c.fMass[i+1]-c.fMass[i]) + dt*S
		huNew := c.HU[i] - (dt/c.DX)*(c.fMom[i+1]-c.fMom[i]) +
			dt*S*c.u[i] - dt*c.Gravity*c.H[i]*c.dZdx[i]
		if hNew < 0 {
			hNew = 0
		}
		if hNew < c.HEps {
			huNew = 0
		}
		c.H[i], c.HU[i] = hNew, huNew
	}
}

// Run integrates to FinalTime, choosing each dt from the CFL bound.
func (c *SWE) Run(showGraph bool, graphDelay ...time.Duration) (err error) {
	var (
		Time  float64
		tstep int
	)
	for Time < c.FinalTime {
		if tstep >= c.MaxSteps {
			err = fmt.Errorf("configuration error: step ceiling %d reached at t = %g before FinalTime %g",
				c.MaxSteps, Time, c.FinalTime)
			return
		}
		for i := 0; i < c.N; i++ {
			c.u[i] = c.HU[i] / math.Max(c.H[i], c.HEps)
		}
		sMax := c.KF.MaxWaveSpeed(c.H, c.u)
		dt := c.CFL * c.DX / (sMax + 1.e-12)
		if Time+dt > c.FinalTime {
			dt = c.FinalTime - Time
		}
		c.Step(dt)
		Time += dt
		tstep++
		if c.Monitor != nil && tstep%c.LogFrequency == 0 {
			c.Monitor(tstep, Time, dt)
		}
		c.Plot(showGraph, graphDelay)
	}
	return
}

// Results returns copies of the cell coordinates, bed elevation, final
// depth (floored at HEps as the velocity derivation requires) and final
// velocity.
func (c *SWE) Results() (x, Z, h, u []float64) {
	x = append([]float64{}, c.X...)
	Z = append([]float64{}, c.Z...)
	h = make([]float64, c.N)
	u = make([]float64, c.N)
	for i := 0; i < c.N; i++ {
		h[i] = math.Max(c.H[i], c.HEps)
		u[i] = c.HU[i] / h[i]
	}
	return
}

func (c *SWE) Plot(showGraph bool, graphDelay []time.Duration) {
	if !showGraph {
		return
	}
	c.plotOnce.Do(func() {
		ymax := float32(2.5 * floats.Max(c.H))
		c.chart = chart2d.NewChart2D(1920, 1280, float32(c.X[0]), float32(c.X[c.N-1]), -ymax, ymax)
		c.colorMap = utils2.NewColorMap(-1, 1, 1)
		go c.chart.Plot()
	})
	pSeries := func(field []float64, name string, color float32) {
		if err := c.chart.AddSeries(name, c.X, field,
			chart2d.NoGlyph, chart2d.Solid, c.colorMap.GetRGB(color)); err != nil {
			panic("unable to add graph series")
		}
	}
	eta := make([]float64, c.N)
	q := make([]float64, c.N)
	for i := 0; i < c.N; i++ {
		eta[i] = c.H[i] + c.Z[i]
		q[i] = c.H[i] * (c.HU[i] / math.Max(c.H[i], c.HEps))
	}
	pSeries(c.Z, "Z", -0.9)
	pSeries(eta, "Eta", -0.5)
	pSeries(c.H, "H", 0.0)
	pSeries(c.u, "U", 0.5)
	pSeries(q, "Q", 0.9)
	if len(graphDelay) != 0 {
		time.Sleep(graphDelay[0])
	}
}
