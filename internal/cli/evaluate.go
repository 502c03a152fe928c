package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/pipeline"
	"github.com/jinwoohan/plotgrid/pkg/render"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// evaluateCommand creates the evaluate command.
func (c *CLI) evaluateCommand() *cobra.Command {
	var (
		zone     string
		jsonOut  string
		pngOut   string
		pngFloor int
		noCache  bool
		refresh  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "evaluate [site.json]",
		Short: "Evaluate a parcel against its zone regulations",
		Long: `Evaluate a parcel against its zone regulations.

The site file is a JSON document with the zone type and the parcel boundary,
either as local coordinates ("points") or a WGS84 ring ("ring"). Optional
module placements are checked for compliance.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadSite(args[0])
			if err != nil {
				return err
			}
			loaded.GridSize = pick(opts.GridSize, loaded.GridSize, c.Config.Grid.Size)
			loaded.Steps = pickInt(opts.Steps, loaded.Steps, c.Config.Grid.Steps)
			loaded.ParcelArea = pick(opts.ParcelArea, loaded.ParcelArea, 0)
			loaded.Refresh = refresh
			if zone != "" {
				loaded.Zone = zoning.ZoneType(zone)
			}
			return c.runEvaluate(withLogger(cmd.Context(), c.Logger), loaded, evaluateOutput{
				jsonPath: jsonOut,
				pngPath:  pngOut,
				pngFloor: pngFloor,
				noCache:  noCache,
			})
		},
	}

	cmd.Flags().StringVar(&zone, "zone", "", "override the zone type from the site file")
	cmd.Flags().Float64Var(&opts.ParcelArea, "area", 0, "override the cadastral parcel area (m²)")
	cmd.Flags().Float64Var(&opts.GridSize, "grid-size", 0, "construction grid cell size in meters (default 0.6)")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "inscribed rectangle sampling resolution (default 60)")
	cmd.Flags().StringVar(&jsonOut, "json", "", "write the full result as JSON to a file ('-' for stdout)")
	cmd.Flags().StringVar(&pngOut, "png", "", "render a site diagram PNG to a file")
	cmd.Flags().IntVar(&pngFloor, "floor", 0, "floor to draw in the PNG (0 = ground)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

type evaluateOutput struct {
	jsonPath string
	pngPath  string
	pngFloor int
	noCache  bool
}

// runEvaluate executes the pipeline and prints the result.
func (c *CLI) runEvaluate(ctx context.Context, opts pipeline.Options, out evaluateOutput) error {
	table, err := c.Config.Table()
	if err != nil {
		return err
	}
	opts.Table = table
	opts.Logger = loggerFromContext(ctx)

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, fmt.Sprintf("Evaluating %s...", opts.Zone))
	spin.Start()

	result, err := runner.Evaluate(ctx, opts)
	if err != nil {
		spin.StopWithError("Evaluation failed")
		return err
	}
	spin.Stop()

	c.printEvaluation(result)

	if out.jsonPath != "" {
		if err := writeResultJSON(out.jsonPath, result); err != nil {
			return err
		}
		if out.jsonPath != "-" {
			printFile(out.jsonPath)
		}
	}
	if out.pngPath != "" {
		err := render.SavePNG(out.pngPath, result, render.Options{
			Floor:    out.pngFloor,
			ShowRect: true,
		})
		if err != nil {
			return err
		}
		printFile(out.pngPath)
	}

	return nil
}

// printEvaluation renders the human-readable summary.
func (c *CLI) printEvaluation(result *pipeline.Result) {
	reg := result.Regulation

	fmt.Println(StyleTitle.Render(reg.ZoneNameKo) + " " + StyleDim.Render(string(reg.ZoneType)))

	printKeyValue("parcel area", fmt.Sprintf("%.1f m²", result.Parcel.Area()))
	printKeyValue("buildable area", fmt.Sprintf("%.1f m²", reg.BuildableArea))
	printKeyValue("max footprint", fmt.Sprintf("%.1f m²", reg.MaxBuildingFootprint))
	printKeyValue("max floor area", fmt.Sprintf("%.1f m²", reg.MaxTotalFloorArea))
	printKeyValue("max floors", formatFloors(reg.EffectiveMaxFloors))
	if result.RectOK {
		printKeyValue("inscribed rect", fmt.Sprintf("%.1f × %.1f m", result.Rect.Width(), result.Rect.Depth()))
	}
	printStats(result.Cells.Len(), len(result.Floors),
		result.CacheInfo.InsetHit && result.CacheInfo.RasterHit)

	if result.Compliance != nil {
		printCompliance(*result.Compliance)
	}
}

// formatFloors renders the floor cap; zero means unlimited.
func formatFloors(floors int) string {
	if floors <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", floors)
}

// loadSite reads a pipeline options document from a JSON site file.
func loadSite(path string) (pipeline.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pipeline.Options{}, errors.New(errors.ErrCodeFileNotFound, "site file not found: %s", path)
		}
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	var opts pipeline.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return opts, nil
}

// writeResultJSON writes the result to path, or stdout when path is "-".
func writeResultJSON(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(resultDocument(result), "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// resultDocument flattens the result for JSON output. The cell set itself is
// omitted; spans carry the same information compactly.
func resultDocument(result *pipeline.Result) map[string]any {
	doc := map[string]any{
		"regulation": result.Regulation,
		"cellCount":  result.Cells.Len(),
		"spans":      result.Spans,
		"floors":     result.Floors,
	}
	if result.RectOK {
		doc["rect"] = result.Rect
	}
	if result.Compliance != nil {
		doc["compliance"] = result.Compliance
	}
	return doc
}

// pick returns the first non-zero value.
func pick(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func pickInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
