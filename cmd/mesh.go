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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/govpinn/govpinn/InputParameters"
	"github.com/govpinn/govpinn/boundary"
	"github.com/govpinn/govpinn/datahandler"
	"github.com/govpinn/govpinn/fespace"
	"github.com/govpinn/govpinn/geometry"
	"github.com/govpinn/govpinn/utils"
)

type MeshRun struct {
	ParamsFile string
	OutputDir  string
	Verbose    bool
	Profile    bool
}

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate or read a quadrilateral mesh and emit VPINN training data",
	Long: `Generates an internal structured mesh or reads an external mesh file
per the experiment parameters, samples the tagged boundary, assembles
the training point sets and writes the mesh and test grid as VTK files.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mesh called")
		mr := &MeshRun{}
		mr.ParamsFile, _ = cmd.Flags().GetString("parametersFile")
		mr.OutputDir, _ = cmd.Flags().GetString("outputDir")
		mr.Verbose, _ = cmd.Flags().GetBool("verbose")
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processInput(mr)
		RunMesh(mr, ip)
	},
}

func processInput(mr *MeshRun) (ip *InputParameters.VPINNParameters2D) {
	var (
		err error
	)
	if len(mr.ParamsFile) == 0 {
		err := fmt.Errorf("must supply an experiment parameters file (-I, --parametersFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Poisson on the unit square"
MeshKind: quadrilateral
GenerationMethod: internal # Can be "external" with MeshFile
XLimits: [0, 1]
YLimits: [0, 1]
NCellsX: 4
NCellsY: 4
NumBoundaryPoints: 100
NTestPointsX: 10
NTestPointsY: 10
QuadratureOrder: 3
OutputFolder: output
BCs:
  1000: {Kind: dirichlet, Value: 0}
  1001: {Kind: dirichlet, Value: 0}
  1002: {Kind: dirichlet, Value: 1}
  1003: {Kind: dirichlet, Value: 0}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = os.ReadFile(mr.ParamsFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.VPINNParameters2D{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("parametersFile", "I", "", "YAML file with the experiment parameters: mesh, boundary sampling, BCs")
	MeshCmd.Flags().StringP("outputDir", "o", "", "override the OutputFolder from the parameters file")
	MeshCmd.Flags().BoolP("verbose", "v", false, "print mesh statistics and memory usage while running")
	MeshCmd.Flags().BoolP("profile", "p", false, "write a CPU profile to the output folder")
}

func RunMesh(mr *MeshRun, ip *InputParameters.VPINNParameters2D) {
	var (
		err error
	)
	outputFolder := ip.OutputFolder
	if len(mr.OutputDir) != 0 {
		outputFolder = mr.OutputDir
	}
	if mr.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(outputFolder)).Stop()
	}
	ip.Print()

	g, err := geometry.NewGeometry2D(ip.MeshKind, ip.GenerationMethod,
		ip.NTestPointsX, ip.NTestPointsY, outputFolder)
	if err != nil {
		panic(err)
	}
	g.Verbose = mr.Verbose

	var cells []geometry.Quad
	switch ip.GenerationMethod {
	case geometry.GenerationInternal:
		cells, _, err = g.GenerateQuadMeshInternal(ip.XLimits, ip.YLimits,
			ip.NCellsX, ip.NCellsY, ip.NumBoundaryPoints)
	case geometry.GenerationExternal:
		cells, _, err = g.ReadMesh(ip.MeshFile, ip.BoundaryRefinement,
			ip.SamplingMethod, ip.RefinementLevel)
	}
	if err != nil {
		panic(err)
	}
	fmt.Printf("Mesh ready: %d cells, %d boundary tags\n", len(cells), len(g.BoundaryPoints))

	names := make(map[int]string, len(ip.BCs))
	values := make(map[int]boundary.ValueFunc, len(ip.BCs))
	for tag, spec := range ip.BCs {
		v := spec.Value
		names[tag] = spec.Kind
		values[tag] = func(x, y float64) float64 { return v }
	}
	cs, err := boundary.NewConditionSetFromNames(names, values)
	if err != nil {
		panic(err)
	}

	fes, err := fespace.NewFESpace2D(g, cs, ip.QuadratureOrder)
	if err != nil {
		panic(err)
	}
	dh, err := datahandler.NewDataHandler2D(fes, g)
	if err != nil {
		panic(err)
	}

	colloc, weights, err := dh.CollocationPoints()
	if err != nil {
		panic(err)
	}
	nColloc, _ := colloc.Dims()
	fmt.Printf("Collocation points: %d, total weight %.6g\n", nColloc, weights.Sum())

	bdPoints, _, bdTags, err := dh.BoundaryData()
	if err != nil {
		panic(err)
	}
	if !bdPoints.IsEmpty() {
		nBd, _ := bdPoints.Dims()
		fmt.Printf("Dirichlet training points: %d over %d tags\n", nBd, len(uniqueTags(bdTags)))
	}

	if err = g.WriteVTK(utils.Matrix{}, "", "mesh.vtk", nil); err != nil {
		panic(err)
	}
	if err = g.ExportTestGrid("test_grid.vtk"); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote mesh.vtk and test_grid.vtk to %s\n", outputFolder)

	if mr.Verbose {
		fmt.Println(utils.GetMemUsage())
	}
}

func uniqueTags(tags []int) (unique []int) {
	seen := make(map[int]bool, 4)
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			unique = append(unique, tag)
		}
	}
	return
}
