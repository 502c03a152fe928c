package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/geom"
	"github.com/jinwoohan/plotgrid/pkg/grid"
)

// gridCommand creates the grid command for rasterization inspection.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		size    float64
		offsetX float64
		offsetZ float64
	)

	cmd := &cobra.Command{
		Use:   "grid [site.json]",
		Short: "Rasterize a parcel onto the construction grid",
		Long: `Rasterize a parcel onto the construction grid.

Projects the raw parcel boundary (no setback inset) onto the grid and prints
cell statistics: cell count, row spans, boundary edges, and index bounds.
Useful for checking grid alignment before a full evaluation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadSite(args[0])
			if err != nil {
				return err
			}

			var poly geom.Polygon
			if len(opts.Points) > 0 {
				poly = geom.NewPolygon(opts.Points...)
			} else if len(opts.Ring) > 0 {
				_, poly = geom.FrameForRing(opts.Ring)
			}
			if poly.IsEmpty() {
				return errors.New(errors.ErrCodeInvalidPolygon, "site file has no usable boundary")
			}

			g := grid.New(pick(size, c.Config.Grid.Size), offsetX, offsetZ)
			prog := newProgress(c.Logger)
			cells := g.CellsInPolygon(poly)
			prog.done(fmt.Sprintf("Rasterized %d cells", cells.Len()))

			if cells.Len() == 0 {
				printWarning("No cells: boundary may be degenerate or exceed the cell limit")
				return nil
			}

			spans := grid.RowSpans(cells)
			edges := g.BoundaryEdges(cells, 0)
			minGX, maxGX, minGZ, maxGZ, _ := grid.Bounds(cells)

			printKeyValue("cell size", fmt.Sprintf("%.2f m", g.Size))
			printKeyValue("cells", fmt.Sprintf("%d", cells.Len()))
			printKeyValue("covered area", fmt.Sprintf("%.1f m²", float64(cells.Len())*g.Size*g.Size))
			printKeyValue("row spans", fmt.Sprintf("%d", len(spans)))
			printKeyValue("boundary edges", fmt.Sprintf("%d", len(edges)))
			printKeyValue("index bounds", fmt.Sprintf("x [%d, %d], z [%d, %d]", minGX, maxGX, minGZ, maxGZ))
			return nil
		},
	}

	cmd.Flags().Float64Var(&size, "size", 0, "grid cell size in meters (default 0.6)")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "grid origin X offset in meters")
	cmd.Flags().Float64Var(&offsetZ, "offset-z", 0, "grid origin Z offset in meters")

	return cmd
}
