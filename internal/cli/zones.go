package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// zonesCommand creates the zones command for inspecting the regulation table.
func (c *CLI) zonesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones [ZONE_TYPE]",
		Short: "List zone regulations or show one zone in detail",
		Long: `List zone regulations or show one zone in detail.

Without arguments, prints the full regulation table. With a zone type
argument (e.g. ZONE_R2_GENERAL), prints that zone's limits. A table override
file from the configuration is applied before display.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.Config.Table()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return showZone(table, zoning.ZoneType(args[0]))
			}
			listZones(table)
			return nil
		},
	}

	return cmd
}

func listZones(table zoning.Table) {
	fmt.Println(StyleTitle.Render("Zone regulations"))
	for _, reg := range table.Regulations() {
		fmt.Printf("%s %s\n",
			StyleValue.Render(fmt.Sprintf("%-22s", string(reg.Zone))),
			StyleDim.Render(regSummary(reg)))
	}
	printDetail("%d zones", table.Len())
}

func showZone(table zoning.Table, zone zoning.ZoneType) error {
	reg, ok := table.Lookup(zone)
	if !ok {
		return errors.New(errors.ErrCodeInvalidZoneType, "unknown zone type %q", zone)
	}

	fmt.Println(StyleTitle.Render(reg.NameKo) + " " + StyleDim.Render(string(reg.Zone)))
	printKeyValue("coverage", formatPercent(reg.MaxCoverageRatio))
	printKeyValue("floor area ratio", formatPercent(reg.MaxFloorAreaRatio))
	printKeyValue("max height", formatLimit(reg.MaxHeight, "m"))
	printKeyValue("max floors", formatFloors(reg.MaxFloors))
	printKeyValue("setbacks", fmt.Sprintf("front %.1f · rear %.1f · left %.1f · right %.1f m",
		reg.SetbackFront, reg.SetbackRear, reg.SetbackLeft, reg.SetbackRight))
	if zoning.IsResidential(reg.Zone) {
		printDetail("solar-access stepping applies above 9 m")
	}
	return nil
}

func regSummary(reg zoning.Regulation) string {
	return fmt.Sprintf("%s · 건폐율 %s · 용적률 %s · %s",
		reg.NameKo,
		formatPercent(reg.MaxCoverageRatio),
		formatPercent(reg.MaxFloorAreaRatio),
		formatFloors(reg.MaxFloors)+" floors")
}

func formatPercent(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", v)
}

func formatLimit(v float64, unit string) string {
	if v <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%.0f %s", v, unit)
}
