package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	var data = `
Title: "Rainfall Case"
N: 400
Length: 20.
FinalTime: 1.
CFL: 0.9
RainRate: 0.05
XiFactor: 6.
NXi: 2048
`
	ip := NewInputParameters1D()
	assert.NoError(t, ip.Parse([]byte(data)))
	assert.Equal(t, "Rainfall Case", ip.Title)
	assert.Equal(t, 400, ip.N)
	assert.Equal(t, 20., ip.Length)
	assert.Equal(t, 1., ip.FinalTime)
	assert.Equal(t, 0.9, ip.CFL)
	assert.Equal(t, 0.05, ip.RainRate)
	assert.Equal(t, 6., ip.XiFactor)
	assert.Equal(t, 2048, ip.NXi)
	// Fields absent from the file keep their defaults
	assert.Equal(t, 9.81, ip.Gravity)
	assert.Equal(t, 1.e-8, ip.HEps)
}

func TestDefaults(t *testing.T) {
	ip := NewInputParameters1D()
	assert.Equal(t, 200, ip.N)
	assert.Equal(t, 10., ip.Length)
	assert.Equal(t, 0.5, ip.CFL)
	assert.Equal(t, 4., ip.XiFactor)
	assert.Equal(t, 1024, ip.NXi)
}
