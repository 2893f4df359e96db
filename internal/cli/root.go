// Package cli implements the tripctl subcommands. Each command is a kong
// struct with a Run method that receives the shared *Context.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// TripStore is the part of the trip store the commands use.
type TripStore interface {
	List(ctx context.Context, filter domain.TripFilter) []domain.Trip
	Get(ctx context.Context, ref string) (domain.Trip, error)
	Create(ctx context.Context, in domain.NewTrip) domain.Trip
}

// Exporter produces the flat export rows.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Context carries the dependencies every command needs.
type Context struct {
	Ctx    context.Context
	Trips  TripStore
	Export Exporter
	Out    io.Writer
	Now    func() time.Time

	// Report and Migrated describe what opening the store did.
	Report   service.InitReport
	Migrated int

	// RunProgram runs an interactive bubbletea program. Tests replace it.
	RunProgram func(tea.Model) error
}

// CLI is the tripctl command tree.
type CLI struct {
	Config   string `help:"Config file (YAML, JSON or TOML) read before the environment." type:"path" env:"CONFIG_FILE"`
	LogLevel string `help:"Log level for store diagnostics." default:"warn" enum:"debug,info,warn,error"`

	List     ListCmd     `cmd:"" help:"List trips." default:"1"`
	Show     ShowCmd     `cmd:"" help:"Show one trip as JSON."`
	Insights InsightsCmd `cmd:"" help:"Show the derived views for one trip."`
	Overview OverviewCmd `cmd:"" help:"Summarise every trip."`
	Export   ExportCmd   `cmd:"" help:"Export one row per activity."`
	Timeline TimelineCmd `cmd:"" help:"Browse a trip's calendar heatmap."`
	Migrate  MigrateCmd  `cmd:"" help:"Apply schema migrations and backfill stored trips."`
	Seed     SeedCmd     `cmd:"" help:"Add the sample trips."`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
