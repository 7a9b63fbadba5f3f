package main

import (
	"fmt"

	"github.com/alexshd/pumphydraulics"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	plotOut            string
	plotRatedGPM       float64
	plotRatedPressure  float64
	plotStaticPSI      float64
	plotTestResidual   float64
	plotTestFlow       float64
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the pump performance curve and hydrant supply curve to a PNG",
	RunE:  runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVar(&plotOut, "out", "pump_curves.png", "output PNG path")
	plotCmd.Flags().Float64Var(&plotRatedGPM, "rated-gpm", 1500, "pump rated flow (gpm)")
	plotCmd.Flags().Float64Var(&plotRatedPressure, "rated-pressure", 150, "pump rated pressure (psi)")
	plotCmd.Flags().Float64Var(&plotStaticPSI, "static-psi", 80, "hydrant static pressure (psi)")
	plotCmd.Flags().Float64Var(&plotTestResidual, "test-residual-psi", 20, "hydrant flow-test residual pressure (psi)")
	plotCmd.Flags().Float64Var(&plotTestFlow, "test-flow-gpm", 1000, "hydrant flow-test measured flow (gpm)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	p := plot.New()
	p.Title.Text = "Pump performance and hydrant supply curves"
	p.X.Label.Text = "Pressure (psi)"
	p.Y.Label.Text = "Flow (gpm)"

	pumpPts := make(plotter.XYs, 0, 61)
	for psi := 0.0; psi <= 1.5*plotRatedPressure+30; psi += (1.5*plotRatedPressure + 30) / 60 {
		gpm := pumphydraulics.PumpCurveMaxGPM(plotRatedGPM, psi, plotRatedPressure)
		pumpPts = append(pumpPts, plotter.XY{X: psi, Y: gpm})
	}
	pumpLine, err := plotter.NewLine(pumpPts)
	if err != nil {
		return fmt.Errorf("building pump curve line: %w", err)
	}
	pumpLine.Color = plotter.DefaultLineStyle.Color
	p.Add(pumpLine)
	p.Legend.Add("pump curve", pumpLine)

	supply := pumphydraulics.SupplyCurve(plotStaticPSI, plotTestResidual, plotTestFlow, 30)
	supplyPts := make(plotter.XYs, len(supply))
	for i, pt := range supply {
		supplyPts[i] = plotter.XY{X: pt.ResidualPSI, Y: pt.FlowGPM}
	}
	supplyLine, err := plotter.NewLine(supplyPts)
	if err != nil {
		return fmt.Errorf("building supply curve line: %w", err)
	}
	p.Add(supplyLine)
	p.Legend.Add("hydrant supply curve", supplyLine)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, plotOut); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}

	fmt.Println(plotOut)
	return nil
}
