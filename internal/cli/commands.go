package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/insights"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/internal/tui"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

type ListCmd struct {
	Status      string   `help:"Only trips with this status."`
	Destination string   `help:"Only destinations containing this text (case-insensitive)."`
	Preference  []string `help:"Only trips sharing one of these holiday preferences." sep:","`
}

func (c *ListCmd) Run(ctx *Context) error {
	var f domain.TripFilter
	if c.Status != "" {
		s := domain.Status(c.Status)
		if !s.Valid() {
			return fmt.Errorf("status %q is not valid", c.Status)
		}
		f.Status = &s
	}
	f.Destination = c.Destination
	f.HolidayPreferences = c.Preference

	trips := ctx.Trips.List(ctx.Ctx, f)
	if len(trips) == 0 {
		fmt.Fprintln(ctx.Out, "No trips found")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SLUG", "DESTINATION", "DATES", "STATUS", "BUDGET", "ACTIVITIES").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, trip := range trips {
		t.Row(
			trip.Slug,
			trip.Destination,
			trip.StartDate.String()+" → "+trip.EndDate.String(),
			string(trip.Status),
			strconv.FormatFloat(trip.TripBudget, 'f', 2, 64),
			strconv.Itoa(len(trip.Activities)),
		)
	}
	fmt.Fprintln(ctx.Out, t.Render())
	return nil
}

type ShowCmd struct {
	Ref string `arg:"" help:"Trip ID or slug."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	trip, err := ctx.Trips.Get(ctx.Ctx, c.Ref)
	if err != nil {
		return refError(c.Ref, err)
	}
	return writeJSON(ctx.Out, trip)
}

type InsightsCmd struct {
	Ref string `arg:"" help:"Trip ID or slug."`
}

func (c *InsightsCmd) Run(ctx *Context) error {
	trip, err := ctx.Trips.Get(ctx.Ctx, c.Ref)
	if err != nil {
		return refError(c.Ref, err)
	}
	return writeJSON(ctx.Out, insights.Summarize(trip, ctx.Now()))
}

type OverviewCmd struct{}

func (c *OverviewCmd) Run(ctx *Context) error {
	trips := ctx.Trips.List(ctx.Ctx, domain.TripFilter{})
	return writeJSON(ctx.Out, insights.Overview(trips, ctx.Now()))
}

type ExportCmd struct {
	Format string `help:"Output format." enum:"csv,json" default:"csv"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	rows, err := ctx.Export.Export(ctx.Ctx)
	if err != nil {
		return err
	}

	out := ctx.Out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer f.Close()
		out = f
	}

	if c.Format == "json" {
		return writeJSON(out, rows)
	}
	return service.WriteCSV(out, rows)
}

type TimelineCmd struct {
	Ref string `arg:"" help:"Trip ID or slug."`
}

func (c *TimelineCmd) Run(ctx *Context) error {
	trip, err := ctx.Trips.Get(ctx.Ctx, c.Ref)
	if err != nil {
		return refError(c.Ref, err)
	}
	return ctx.RunProgram(tui.NewModel(trip))
}

// MigrateCmd reports what opening the store did. Opening already applies
// pending migrations and backfills older records, so there is nothing left
// to run here.
type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Out, "schema migrations applied: %d\n", ctx.Migrated)
	fmt.Fprintf(ctx.Out, "trips loaded: %d, backfilled: %d\n", ctx.Report.Loaded, ctx.Report.Backfilled)
	if ctx.Report.LoadFailed {
		return errors.New("stored trips could not be read")
	}
	return nil
}

type SeedCmd struct {
	Force bool `help:"Add the samples even when trips already exist."`
}

func (c *SeedCmd) Run(ctx *Context) error {
	if n := len(ctx.Trips.List(ctx.Ctx, domain.TripFilter{})); n > 0 && !c.Force {
		fmt.Fprintf(ctx.Out, "store already holds %d trips; use --force to add the samples anyway\n", n)
		return nil
	}
	for _, in := range service.SampleTrips(ctx.Now()) {
		trip := ctx.Trips.Create(ctx.Ctx, in)
		fmt.Fprintf(ctx.Out, "created %s\n", trip.Slug)
	}
	return nil
}

func refError(ref string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("trip %q not found", ref)
	}
	return err
}
