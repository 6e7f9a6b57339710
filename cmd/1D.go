/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/Anenin41/Thesis-Public/InputParameters"
	"github.com/Anenin41/Thesis-Public/model_problems/SWE1D"
)

// OneDCmd represents the 1D command
var OneDCmd = &cobra.Command{
	Use:   "1D",
	Short: "One dimensional kinetic shallow water solver with rainfall recharge",
	Long: `
Integrates the 1D shallow water equations with a rainfall/infiltration
recharge source. Interface fluxes come from kinetic flux splitting and
time stepping is explicit with a CFL-adaptive step. Defaults reproduce
the dam-break scenario.

thesis 1D`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("1D called")
		ip, err := processInput1D(cmd)
		if err != nil {
			return err
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		ip.Print()
		c, err := SWE1D.NewSWE(ip)
		if err != nil {
			return err
		}
		c.Monitor = func(tstep int, t, dt float64) {
			fmt.Printf("Time = %8.4f, step = %d, dt = %8.3e, hmin = %8.6f, hmax = %8.6f\n",
				t, tstep, dt, floats.Min(c.H), floats.Max(c.H))
		}
		graph, _ := cmd.Flags().GetBool("graph")
		dr, _ := cmd.Flags().GetInt("delay")
		if err = c.Run(graph, time.Duration(dr)*time.Millisecond); err != nil {
			return err
		}
		_, _, h, u := c.Results()
		fmt.Printf("Final min/max h: %8.6f, %8.6f\n", floats.Min(h), floats.Max(h))
		fmt.Printf("Final min/max u: %8.6f, %8.6f\n", floats.Min(u), floats.Max(u))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(OneDCmd)
	def := InputParameters.NewInputParameters1D()
	OneDCmd.Flags().IntP("n", "n", def.N, "Number of cells in the domain")
	OneDCmd.Flags().Float64("length", def.Length, "Domain length, the domain is [0, length]")
	OneDCmd.Flags().Float64("finalTime", def.FinalTime, "FinalTime - the target end time for the sim")
	OneDCmd.Flags().Float64("CFL", def.CFL, "CFL in (0,1] - increase for speedup, decrease for stability")
	OneDCmd.Flags().Float64("gravity", def.Gravity, "Gravitational acceleration")
	OneDCmd.Flags().Float64("rain", def.RainRate, "Uniform rainfall rate, 0 recovers the plain dam break")
	OneDCmd.Flags().Float64("xiFactor", def.XiFactor, "Kinetic velocity range safety factor - must dominate the fastest wave")
	OneDCmd.Flags().Int("nXi", def.NXi, "Kinetic grid quadrature points - the higher the better")
	OneDCmd.Flags().Int("logFrequency", def.LogFrequency, "Progress print cadence in steps, cosmetic only")
	OneDCmd.Flags().Int("maxSteps", def.MaxSteps, "Hard ceiling on the step count")
	OneDCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file with run parameters, flags override it")
	OneDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	OneDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	OneDCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}

func processInput1D(cmd *cobra.Command) (ip *InputParameters.InputParameters1D, err error) {
	ip = InputParameters.NewInputParameters1D()
	if fileName, _ := cmd.Flags().GetString("inputParametersFile"); len(fileName) != 0 {
		var data []byte
		if data, err = os.ReadFile(fileName); err == nil {
			err = ip.Parse(data)
		}
		if err != nil {
			exampleFile := `
########################################
Title: "Dam Break"
N: 200
Length: 10.
FinalTime: 0.5
CFL: 0.5
RainRate: 0.
XiFactor: 4.
NXi: 1024
########################################
`
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			return
		}
	}
	// Flags passed explicitly override the parameters file
	if cmd.Flags().Changed("n") {
		ip.N, _ = cmd.Flags().GetInt("n")
	}
	if cmd.Flags().Changed("length") {
		ip.Length, _ = cmd.Flags().GetFloat64("length")
	}
	if cmd.Flags().Changed("finalTime") {
		ip.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
	}
	if cmd.Flags().Changed("CFL") {
		ip.CFL, _ = cmd.Flags().GetFloat64("CFL")
	}
	if cmd.Flags().Changed("gravity") {
		ip.Gravity, _ = cmd.Flags().GetFloat64("gravity")
	}
	if cmd.Flags().Changed("rain") {
		ip.RainRate, _ = cmd.Flags().GetFloat64("rain")
	}
	if cmd.Flags().Changed("xiFactor") {
		ip.XiFactor, _ = cmd.Flags().GetFloat64("xiFactor")
	}
	if cmd.Flags().Changed("nXi") {
		ip.NXi, _ = cmd.Flags().GetInt("nXi")
	}
	if cmd.Flags().Changed("logFrequency") {
		ip.LogFrequency, _ = cmd.Flags().GetInt("logFrequency")
	}
	if cmd.Flags().Changed("maxSteps") {
		ip.MaxSteps, _ = cmd.Flags().GetInt("maxSteps")
	}
	return
}
