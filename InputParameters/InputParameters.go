package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file for the 1D kinetic
// shallow-water model
type InputParameters1D struct {
	Title        string  `yaml:"Title"`
	N            int     `yaml:"N"`            // Number of cells
	Length       float64 `yaml:"Length"`       // Domain is [0, Length]
	FinalTime    float64 `yaml:"FinalTime"`
	CFL          float64 `yaml:"CFL"`          // In (0, 1]
	Gravity      float64 `yaml:"Gravity"`
	RainRate     float64 `yaml:"RainRate"`     // Uniform rainfall, 0 recovers plain dam break
	XiFactor     float64 `yaml:"XiFactor"`     // Kinetic grid range safety factor
	NXi          int     `yaml:"NXi"`          // Kinetic grid quadrature resolution
	HEps         float64 `yaml:"HEps"`         // Dry-cell depth threshold
	LogFrequency int     `yaml:"LogFrequency"` // Progress print cadence in steps
	MaxSteps     int     `yaml:"MaxSteps"`     // Hard ceiling on step count
}

// NewInputParameters1D returns the default dam-break configuration
func NewInputParameters1D() *InputParameters1D {
	return &InputParameters1D{
		Title:        "Kinetic SWE + Recharge",
		N:            200,
		Length:       10,
		FinalTime:    0.5,
		CFL:          0.5,
		Gravity:      9.81,
		RainRate:     0,
		XiFactor:     4,
		NXi:          1024,
		HEps:         1.e-8,
		LogFrequency: 20,
		MaxSteps:     10000000,
	}
}

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= N (cells)\n", ip.N)
	fmt.Printf("%8.5f\t\t= Length\n", ip.Length)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= Gravity\n", ip.Gravity)
	fmt.Printf("%8.5f\t\t= RainRate\n", ip.RainRate)
	fmt.Printf("%8.5f\t\t= XiFactor\n", ip.XiFactor)
	fmt.Printf("[%d]\t\t\t= NXi (quadrature points)\n", ip.NXi)
}
