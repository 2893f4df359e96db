package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// ExportRow is the JSON shape of one export row. Activity fields are omitted
// for trips without activities.
type ExportRow struct {
	TripID        string  `json:"tripId"`
	TripSlug      string  `json:"tripSlug"`
	Destination   string  `json:"destination"`
	TripStartDate string  `json:"tripStartDate"`
	TripEndDate   string  `json:"tripEndDate"`
	Status        string  `json:"status"`
	TripBudget    float64 `json:"tripBudget"`
	ActivityName  string  `json:"activityName,omitempty"`
	ActivityDate  string  `json:"activityDate,omitempty"`
	Location      string  `json:"location,omitempty"`
	ActivityType  string  `json:"activityType,omitempty"`
	Category      string  `json:"category,omitempty"`
	ActivityCost  float64 `json:"activityCost"`
}

// GetExport handles GET /export.
// It returns one row per activity across all trips; trips without activities
// contribute one row. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "export")
		return
	}

	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "csv":
		s.writeCSV(w, r, rows)
	case "", "json":
		out := make([]ExportRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, ExportRow(row))
		}
		writeJSON(w, http.StatusOK, out)
	default:
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be json or csv"))
	}
}

// writeCSV encodes rows as CSV with a header line.
func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, rows); err != nil {
		s.writeStoreError(w, r, err, "export")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
