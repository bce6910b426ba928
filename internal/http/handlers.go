package http

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Vaillus/revolut-expense-manager/internal/core"
	"github.com/Vaillus/revolut-expense-manager/internal/log"
	"github.com/Vaillus/revolut-expense-manager/internal/report"
)

// overviewView is the rendered model of the category-overview partial.
type overviewView struct {
	Month string // "2006-01", empty for the whole dataset
	Total string
	Rows  []overviewRow
}

type overviewRow struct {
	Name   string
	Amount string
	Width  int // progress bar width, percent of the largest category
}

// seriesView is the rendered model of the timeseries partial.
type seriesView struct {
	Rows []seriesRow
}

type seriesRow struct {
	Month       string
	Regular     string
	Exceptional string
	Total       string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	ds, err := s.pipeline.Dataset(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dataset load error", log.FieldError, err)
	}
	categories, err := s.pipeline.Categories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category list error", log.FieldError, err)
	}
	files, err := s.pipeline.RawFiles(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Raw file scan error", log.FieldError, err)
	}

	months := make([]string, 0)
	for _, m := range report.Months(ds) {
		months = append(months, m.String())
	}
	fileNames := make([]string, 0, len(files))
	for _, f := range files {
		fileNames = append(fileNames, f.Name)
	}

	data := struct {
		Months     []string
		Categories []string
		RawFiles   []string
		Records    int
	}{
		Months:     months,
		Categories: categories,
		RawFiles:   fileNames,
		Records:    len(ds),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCategoryOverview renders per-category totals for the selected month,
// or for the whole dataset when no month is given.
func (s *Server) handleCategoryOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	month, err := monthParam(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid month</div>`))
		return
	}

	key := "all"
	if !month.IsZero() {
		key = month.String()
	}
	view, found := s.overviewCache.Get(key)
	if !found {
		ds, err := s.pipeline.Dataset(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Category overview error", log.FieldError, err)
			_, _ = w.Write([]byte(`<div class="error">Could not load the category overview</div>`))
			return
		}
		view = buildOverview(ds, month)
		s.overviewCache.Set(key, view)
	}

	s.renderPartial(w, r, "category_overview.html", view)
}

// handleTimeseries renders the monthly regular/exceptional spending table.
func (s *Server) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	view, found := s.seriesCache.Get("series")
	if !found {
		ds, err := s.pipeline.Dataset(r.Context())
		if err != nil {
			s.logger.ErrorContext(r.Context(), "Timeseries error", log.FieldError, err)
			_, _ = w.Write([]byte(`<div class="error">Could not load the timeseries</div>`))
			return
		}
		view = buildSeries(ds)
		s.seriesCache.Set("series", view)
	}

	s.renderPartial(w, r, "timeseries.html", view)
}

// handlePendingVendors renders the tagging queue: uncategorized vendors with
// a tag form each, largest spend first.
func (s *Server) handlePendingVendors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	pending, err := s.pipeline.Pending(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Pending vendors error", log.FieldError, err)
		_, _ = w.Write([]byte(`<div class="error">Could not load pending vendors</div>`))
		return
	}
	categories, err := s.pipeline.Categories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category list error", log.FieldError, err)
	}

	type pendingRow struct {
		Vendor string
		Count  int
		Total  string
	}
	data := struct {
		Vendors    []pendingRow
		Categories []string
	}{Categories: categories}
	for _, p := range pending {
		data.Vendors = append(data.Vendors, pendingRow{
			Vendor: p.Vendor,
			Count:  p.Count,
			Total:  formatAmount(p.Total),
		})
	}

	s.renderPartial(w, r, "pending_vendors.html", data)
}

// handleTagVendor records a vendor→category association and re-tags the
// dataset. The response is an HTMX fragment plus a trigger so the report
// partials refresh themselves.
func (s *Server) handleTagVendor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	vendor := sanitizeInput(r.Form.Get("vendor"))
	category := sanitizeInput(r.Form.Get("category"))

	summary, err := s.pipeline.TagVendor(r.Context(), vendor, category)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Tag vendor error",
			log.FieldError, err,
			log.FieldVendor, vendor,
			log.FieldCategory, category)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	s.invalidateViews()
	w.Header().Set("HX-Trigger", `{"vendor:tagged": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Tagged ` +
		template.HTMLEscapeString(summary.Vendor) + ` as ` +
		template.HTMLEscapeString(summary.Category) + `</div>`))
}

// handleImport runs the import pipeline for one file from the raw directory.
// Only names listed by the raw-file scan are accepted.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	name := filepath.Base(sanitizeInput(r.Form.Get("file")))
	files, err := s.pipeline.RawFiles(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Raw file scan error", log.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not list raw files</div>`))
		return
	}
	path := ""
	for _, f := range files {
		if f.Name == name {
			path = f.Path
			break
		}
	}
	if path == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Unknown file ` + template.HTMLEscapeString(name) + `</div>`))
		return
	}

	summary, err := s.pipeline.ImportFile(r.Context(), path)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Import error", log.FieldError, err, log.FieldFile, path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	s.invalidateViews()
	w.Header().Set("HX-Trigger", `{"dataset:imported": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Imported ` +
		template.HTMLEscapeString(name) + `: ` +
		strconv.Itoa(summary.Added) + ` new, ` +
		strconv.Itoa(summary.Duplicates) + ` duplicates, ` +
		strconv.Itoa(len(summary.Pending)) + ` vendors to tag</div>`))
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="error">templates not loaded</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error",
			log.FieldError, err, "template", name)
		_, _ = w.Write([]byte(`<div class="error">Rendering error</div>`))
	}
}

func buildOverview(ds []core.TaggedTransaction, month core.Month) overviewView {
	totals := report.CategoryTotals(ds, month)

	view := overviewView{Total: formatAmount(report.Total(ds, month))}
	if !month.IsZero() {
		view.Month = month.String()
	}

	var max decimal.Decimal
	if len(totals) > 0 {
		max = totals[0].Total // sorted descending
	}
	for _, ct := range totals {
		width := 0
		if max.IsPositive() && ct.Total.IsPositive() {
			width = int(ct.Total.Div(max).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		view.Rows = append(view.Rows, overviewRow{
			Name:   ct.Name,
			Amount: formatAmount(ct.Total),
			Width:  width,
		})
	}
	return view
}

func buildSeries(ds []core.TaggedTransaction) seriesView {
	var view seriesView
	for _, mt := range report.MonthlySeries(ds) {
		view.Rows = append(view.Rows, seriesRow{
			Month:       mt.Month.String(),
			Regular:     formatAmount(mt.Regular),
			Exceptional: formatAmount(mt.Exceptional),
			Total:       formatAmount(mt.Total),
		})
	}
	return view
}

// monthParam extracts an optional "month" query parameter ("2006-01").
// Absent means the whole dataset.
func monthParam(r *http.Request) (core.Month, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" || v == "all" {
		return core.Month{}, nil
	}
	return core.ParseMonth(v)
}

func formatAmount(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}
