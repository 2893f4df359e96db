package cli_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/cli"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/insights"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/internal/tui"
)

var fixedNow = time.Date(2025, time.May, 20, 12, 0, 0, 0, time.UTC)

// harness is a tripctl run against an in-memory store.
type harness struct {
	trips   *service.TripService
	out     bytes.Buffer
	program tea.Model
}

func newHarness(t *testing.T, seed bool) *harness {
	t.Helper()
	opts := []service.Option{service.WithClock(func() time.Time { return fixedNow })}
	if seed {
		opts = append(opts, service.WithSeed(service.SampleTrips))
	}
	trips := service.NewTripService(repo.NewTripRepo(repo.NewMemoryBlobRepo()), opts...)
	trips.Init(context.Background())
	return &harness{trips: trips}
}

// run parses args the way tripctl does and runs the selected command.
func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	var root cli.CLI
	parser, err := kong.New(&root, kong.Name("tripctl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run(&cli.Context{
		Ctx:    context.Background(),
		Trips:  h.trips,
		Export: service.NewExportService(h.trips),
		Out:    &h.out,
		Now:    func() time.Time { return fixedNow },
		Report: service.InitReport{Loaded: 3, Backfilled: 1},
		RunProgram: func(m tea.Model) error {
			h.program = m
			return nil
		},
	})
}

func TestList_isDefaultCommand(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run(t))

	out := h.out.String()
	assert.Contains(t, out, "lisbon-portugal")
	assert.Contains(t, out, "banff-national-park")
	assert.Contains(t, out, "kyoto")
}

func TestList_filters(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run(t, "list", "--destination", "KYO"))

	out := h.out.String()
	assert.Contains(t, out, "kyoto")
	assert.NotContains(t, out, "lisbon-portugal")
}

func TestList_invalidStatus(t *testing.T) {
	h := newHarness(t, true)

	err := h.run(t, "list", "--status", "dreaming")

	assert.ErrorContains(t, err, `status "dreaming" is not valid`)
}

func TestList_empty(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.run(t, "list"))

	assert.Equal(t, "No trips found\n", h.out.String())
}

func TestShow_bySlug(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run(t, "show", "kyoto"))

	var got domain.Trip
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, "Kyoto", got.Destination)
}

func TestShow_notFound(t *testing.T) {
	h := newHarness(t, true)

	err := h.run(t, "show", "atlantis")

	assert.EqualError(t, err, `trip "atlantis" not found`)
}

func TestInsights(t *testing.T) {
	h := newHarness(t, true)
	trip, err := h.trips.Get(context.Background(), "lisbon-portugal")
	require.NoError(t, err)

	require.NoError(t, h.run(t, "insights", "lisbon-portugal"))

	var got insights.TripInsights
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, insights.Budget(trip), got.Budget)
}

func TestOverview(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run(t, "overview"))

	var got insights.PortfolioOverview
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, 3, got.TotalTrips)
}

func TestExport_csvToFile(t *testing.T) {
	h := newHarness(t, true)
	path := filepath.Join(t.TempDir(), "trips.csv")

	require.NoError(t, h.run(t, "export", "-o", path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, service.CSVHeaders, records[0])
	assert.Greater(t, len(records), 3)
	assert.Empty(t, h.out.String())
}

func TestExport_json(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run(t, "export", "--format", "json"))

	var rows []domain.ExportRow
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rows))
	assert.NotEmpty(t, rows)
}

func TestExport_rejectsUnknownFormat(t *testing.T) {
	h := newHarness(t, true)

	assert.Error(t, h.run(t, "export", "--format", "xml"))
}

func TestTimeline_runsHeatmap(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.run(t, "timeline", "kyoto"))

	m, ok := h.program.(tui.Model)
	require.True(t, ok)
	assert.Contains(t, m.View(), "Kyoto")
}

func TestMigrate_reportsStartup(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.run(t, "migrate"))

	assert.Contains(t, h.out.String(), "trips loaded: 3, backfilled: 1")
}

func TestSeed(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.run(t, "seed"))
	assert.Len(t, h.trips.List(context.Background(), domain.TripFilter{}), 3)

	h.out.Reset()
	require.NoError(t, h.run(t, "seed"))
	assert.Contains(t, h.out.String(), "use --force")
	assert.Len(t, h.trips.List(context.Background(), domain.TripFilter{}), 3)

	require.NoError(t, h.run(t, "seed", "--force"))
	assert.Len(t, h.trips.List(context.Background(), domain.TripFilter{}), 6)
}
