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

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridtools/cubedsphere/cubesphere"
	"github.com/gridtools/cubedsphere/gridio"
)

type ModelHGrid struct {
	DeckFile   string
	OutputDir  string
	Resolution int
	Verbose    bool
	Profile    bool
}

type NestDeck struct {
	ParentTile  int `yaml:"ParentTile"`
	RefineRatio int `yaml:"RefineRatio"`
	IStart      int `yaml:"IStart"`
	IEnd        int `yaml:"IEnd"`
	JStart      int `yaml:"JStart"`
	JEnd        int `yaml:"JEnd"`
}

type GridDeck struct {
	Title              string     `yaml:"Title"`
	GridType           string     `yaml:"GridType"`
	SuperGridSize      int        `yaml:"SuperGridSize"`
	StretchMode        string     `yaml:"StretchMode"` // "", "schmidt" or "cube"
	StretchFactor      float64    `yaml:"StretchFactor"`
	TargetLon          float64    `yaml:"TargetLon"`
	TargetLat          float64    `yaml:"TargetLat"`
	ShiftFac           float64    `yaml:"ShiftFac"`
	Halo               int        `yaml:"Halo"`
	OutputLengthAngle  bool       `yaml:"OutputLengthAngle"`
	LegacyGlobalRefine bool       `yaml:"LegacyGlobalRefine"`
	Nests              []NestDeck `yaml:"Nests"`
}

func (gd *GridDeck) Parse(data []byte) error {
	return yaml.Unmarshal(data, gd)
}

func (gd *GridDeck) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gd.Title)
	fmt.Printf("[%s]\t= Grid Type\n", gd.GridType)
	fmt.Printf("[%d]\t\t\t= Supergrid Size\n", gd.SuperGridSize)
	if len(gd.StretchMode) != 0 {
		fmt.Printf("[%s]\t\t= Stretch Mode\n", gd.StretchMode)
		fmt.Printf("%8.5f\t\t= Stretch Factor\n", gd.StretchFactor)
		fmt.Printf("%8.5f\t\t= Target Lon\n", gd.TargetLon)
		fmt.Printf("%8.5f\t\t= Target Lat\n", gd.TargetLat)
	}
	if gd.LegacyGlobalRefine {
		fmt.Printf("[legacy]\t\t= Global Refine\n")
	}
	for i, ns := range gd.Nests {
		fmt.Printf("Nests[%d] = %+v\n", i, ns)
	}
}

// HGridCmd represents the hgrid command
var HGridCmd = &cobra.Command{
	Use:   "hgrid",
	Short: "Generate a cubed sphere horizontal grid and write it to disk",
	Long:  `Generate a cubed sphere horizontal grid and write it to disk`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("hgrid called")
		mh := &ModelHGrid{}
		if mh.DeckFile, err = cmd.Flags().GetString("deckFile"); err != nil {
			panic(err)
		}
		if mh.OutputDir, err = cmd.Flags().GetString("outputDir"); err != nil {
			panic(err)
		}
		mh.Resolution, _ = cmd.Flags().GetInt("resolution")
		mh.Verbose, _ = cmd.Flags().GetBool("verbose")
		mh.Profile, _ = cmd.Flags().GetBool("profile")
		if mh.Profile {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		gd := processDeck(mh)
		RunHGrid(mh, gd)
	},
}

func processDeck(mh *ModelHGrid) (gd *GridDeck) {
	var (
		err error
	)
	gd = &GridDeck{
		GridType:          "gnomonic_ed",
		ShiftFac:          18,
		OutputLengthAngle: true,
	}
	if len(mh.DeckFile) == 0 && mh.Resolution == 0 {
		err := fmt.Errorf("must supply a resolution (-r, --resolution) or a grid deck (-I, --deckFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "C96 stretched"
GridType: gnomonic_ed
SuperGridSize: 192
StretchMode: schmidt
StretchFactor: 3.
TargetLon: 262.4
TargetLat: 38.5
OutputLengthAngle: true
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if len(mh.DeckFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(mh.DeckFile); err != nil {
			panic(err)
		}
		if err = gd.Parse(data); err != nil {
			panic(err)
		}
	}
	if mh.Resolution != 0 {
		gd.SuperGridSize = mh.Resolution
	}
	return
}

func init() {
	rootCmd.AddCommand(HGridCmd)
	HGridCmd.Flags().StringP("deckFile", "I", "", "YAML file describing the grid:\n\t- SuperGridSize\n\t- StretchMode, StretchFactor\n\t- Nests")
	HGridCmd.Flags().StringP("outputDir", "o", "grid_out", "directory to write field files and the manifest into")
	HGridCmd.Flags().IntP("resolution", "r", 0, "supergrid size per face, overrides the deck value")
	HGridCmd.Flags().BoolP("verbose", "v", false, "log debug detail while generating")
	HGridCmd.Flags().Bool("profile", false, "write a CPU profile of the generation")
}

func RunHGrid(mh *ModelHGrid, gd *GridDeck) {
	log := logrus.StandardLogger()
	if mh.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	gd.Print()

	spec, err := specFromDeck(gd)
	if err != nil {
		log.Fatal(err)
	}
	gen, err := cubesphere.New(spec, cubesphere.WithLogger(logrus.NewEntry(log)))
	if err != nil {
		log.Fatal(err)
	}
	grid, err := gen.Generate()
	if err != nil {
		log.Fatal(err)
	}
	if err = gridio.WriteGrid(mh.OutputDir, grid); err != nil {
		log.Fatal(err)
	}
	log.Infof("grid written to %s", mh.OutputDir)
}

func specFromDeck(gd *GridDeck) (spec cubesphere.Spec, err error) {
	spec.Projection, err = cubesphere.ParseProjection(gd.GridType)
	if err != nil {
		return
	}
	for n := 0; n < cubesphere.BaseTiles; n++ {
		spec.SuperGridSizes[n] = gd.SuperGridSize
	}
	switch gd.StretchMode {
	case "":
	case "schmidt":
		spec.Stretch = cubesphere.Stretch{
			Mode:      cubesphere.Schmidt,
			Factor:    gd.StretchFactor,
			TargetLon: gd.TargetLon,
			TargetLat: gd.TargetLat,
		}
	case "cube":
		spec.Stretch = cubesphere.Stretch{
			Mode:      cubesphere.CubeTransform,
			Factor:    gd.StretchFactor,
			TargetLon: gd.TargetLon,
			TargetLat: gd.TargetLat,
		}
	default:
		err = fmt.Errorf("unknown stretch mode %q, want schmidt or cube", gd.StretchMode)
		return
	}
	spec.ShiftFac = gd.ShiftFac
	spec.Halo = gd.Halo
	spec.OutputLengthAngle = gd.OutputLengthAngle
	spec.LegacyGlobalRefine = gd.LegacyGlobalRefine
	for _, ns := range gd.Nests {
		spec.Nests = append(spec.Nests, cubesphere.NestSpec{
			ParentTile:  ns.ParentTile,
			RefineRatio: ns.RefineRatio,
			IStart:      ns.IStart,
			IEnd:        ns.IEnd,
			JStart:      ns.JStart,
			JEnd:        ns.JEnd,
		})
	}
	return
}
