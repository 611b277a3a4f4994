package web

import (
	"bytes"
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpark/clipvault/internal/clipboard"
	"github.com/hpark/clipvault/internal/config"
	"github.com/hpark/clipvault/internal/entry"
	"github.com/hpark/clipvault/internal/errors"
	"github.com/hpark/clipvault/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	clip     clipboard.Clipboard
	renderer *Renderer
}

// HandleList handles GET /entries — browse, filter, and search history.
// A "q" parameter searches; a "category" parameter filters; neither lists.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	limit := parseIntParam(r, "limit", ops.DefaultListLimit)

	var (
		items []ops.Item
		err   error
	)
	switch {
	case query != "":
		var result *ops.SearchOutput
		result, err = ops.Search(r.Context(), h.db, ops.SearchInput{Term: query, Limit: limit})
		if result != nil {
			items = result.Items
		}
	case category != "":
		var result *ops.FilterOutput
		result, err = ops.Filter(r.Context(), h.db, ops.FilterInput{Category: category, Limit: limit})
		if result != nil {
			items = result.Items
		}
	default:
		var result *ops.ListOutput
		result, err = ops.List(r.Context(), h.db, ops.ListInput{Limit: limit})
		if result != nil {
			items = result.Items
		}
	}
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	total, err := ops.CountEntries(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "History",
			Version: h.renderer.version,
			Nav:     "entries",
		},
		Items:      items,
		Total:      total.Total,
		Category:   category,
		Query:      query,
		Categories: categoryNames(),
		Notice:     r.URL.Query().Get("notice"),
	})
}

// HandleDetail handles GET /entries/{id} — view a single entry.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	result, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   "Entry " + result.Item.ID,
			Version: h.renderer.version,
			Nav:     "entries",
		},
		Item:         result.Item,
		RenderedHTML: renderMarkdown(result.Item.Content),
		Notice:       r.URL.Query().Get("notice"),
	})
}

// HandleStats handles GET /entries/stats — per-category counts.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := ops.Stats(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "stats", StatsPageData{
		PageData: PageData{
			Title:   "Stats",
			Version: h.renderer.version,
			Nav:     "stats",
		},
		Stats: stats,
	})
}

// HandleExport handles GET /entries/export — download history as JSONL.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	// Buffer the stream so a mid-export failure can still produce a clean
	// error response.
	var buf bytes.Buffer
	if _, err := ops.Export(r.Context(), h.db, &buf); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/jsonl")
	w.Header().Set("Content-Disposition", `attachment; filename="clipvault-export.jsonl"`)
	_, _ = w.Write(buf.Bytes())
}

// HandleRecopy handles POST /entries/{id}/copy — restore an entry's content
// to the OS clipboard.
func (h *Handlers) HandleRecopy(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("entry ID is required"))
		return
	}

	result, err := ops.Recopy(r.Context(), h.db, h.clip, ops.RecopyInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, "/entries/"+id+"?notice=copied", http.StatusSeeOther)
}

// HandleClear handles POST /entries/clear — atomically empty the history.
// Requires confirm=true to guard against accidental form submission.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	result, err := ops.Clear(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, "/entries?notice=cleared", http.StatusSeeOther)
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// parseIntParam parses an integer query parameter with a fallback default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// categoryNames returns the category labels in display order.
func categoryNames() []string {
	names := make([]string, len(entry.Categories))
	for i, c := range entry.Categories {
		names[i] = string(c)
	}
	return names
}
