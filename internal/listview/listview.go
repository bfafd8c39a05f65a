// Package listview implements the list-screen pattern shared by the
// users, rooms, contacts and bookings screens: fetch once, then filter,
// search and paginate locally without further network calls.
package listview

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/convert"
	"github.com/eliteresort/resortadmin/internal/resources"
)

// State is the screen lifecycle state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// FilterAll is the categorical filter value meaning "not filtering".
const FilterAll = "all"

// Fetch loads the collection. Delete removes one record by canonical key.
type Fetch func(ctx context.Context) ([]resources.Record, error)

// Delete removes one record by canonical key.
type Delete func(ctx context.Context, id string) error

// Config fixes a screen's page size, searchable fields and error texts.
type Config struct {
	PageSize     int
	SearchFields []string

	LoadErrorMessage   string
	DeleteErrorMessage string
}

// PageInfo describes the rendered page window.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// Controller holds one screen's fetched collection and view state. Query,
// filter and page changes are pure local derivations; only Load, Refresh
// and Delete touch the network.
type Controller struct {
	mu sync.Mutex

	cfg    Config
	fetch  Fetch
	remove Delete

	state   State
	errMsg  string
	records []resources.Record

	query   string
	filters map[string]string
	page    int

	closed bool
}

// New builds a controller in the Loading state. Call Load to populate it.
func New(cfg Config, fetch Fetch, remove Delete) *Controller {
	if cfg.PageSize < 1 {
		cfg.PageSize = 5
	}
	if cfg.LoadErrorMessage == "" {
		cfg.LoadErrorMessage = "failed to load"
	}
	if cfg.DeleteErrorMessage == "" {
		cfg.DeleteErrorMessage = "failed to delete"
	}
	return &Controller{
		cfg:     cfg,
		fetch:   fetch,
		remove:  remove,
		state:   StateLoading,
		filters: map[string]string{},
		page:    1,
	}
}

// Load performs the initial fetch.
func (c *Controller) Load(ctx context.Context) {
	c.Refresh(ctx, false)
}

// Refresh re-fetches the collection. A silent refresh keeps the current
// state visible instead of re-entering Loading.
func (c *Controller) Refresh(ctx context.Context, silent bool) {
	if !silent {
		c.mu.Lock()
		c.state = StateLoading
		c.errMsg = ""
		c.mu.Unlock()
	}

	records, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// The screen went away while the fetch was in flight.
		return
	}
	if err != nil {
		c.state = StateError
		c.errMsg = apiclient.ErrorMessage(err, c.cfg.LoadErrorMessage)
		c.records = nil
		return
	}
	c.state = StateReady
	c.errMsg = ""
	c.records = records
	c.clampPageLocked()
}

// Close marks the controller detached; in-flight results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrorMessage returns the current error text, empty outside Error state.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// SetQuery updates the free-text query and returns to the first page.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.page = 1
}

// SetFilter sets a categorical filter; FilterAll or "" deactivates it.
func (c *Controller) SetFilter(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters[name] = value
	c.page = 1
}

// SetPage moves to a page, clamped into the valid range for the current
// filtered view.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = page
	c.clampPageLocked()
}

// Filtered derives the filtered view: case-insensitive substring match of
// the query against the searchable fields, intersected with exact matches
// for each active categorical filter. Order is preserved.
func (c *Controller) Filtered() []resources.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

func (c *Controller) filteredLocked() []resources.Record {
	query := strings.ToLower(strings.TrimSpace(c.query))

	out := make([]resources.Record, 0, len(c.records))
	for _, record := range c.records {
		if !c.matchesFiltersLocked(record) {
			continue
		}
		if query != "" && !c.matchesQueryLocked(record, query) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func (c *Controller) matchesFiltersLocked(record resources.Record) bool {
	for name, value := range c.filters {
		if value == "" || value == FilterAll {
			continue
		}
		field := convert.ToString(record[name], "")
		if !strings.EqualFold(field, value) {
			return false
		}
	}
	return true
}

func (c *Controller) matchesQueryLocked(record resources.Record, query string) bool {
	parts := make([]string, 0, len(c.cfg.SearchFields))
	for _, field := range c.cfg.SearchFields {
		parts = append(parts, strings.ToLower(convert.ToString(record[field], "")))
	}
	return strings.Contains(strings.Join(parts, " "), query)
}

// Page returns the current page window of the filtered view.
func (c *Controller) Page() ([]resources.Record, PageInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.filteredLocked()
	c.clampPageForLocked(len(filtered))

	info := PageInfo{
		Page:       c.page,
		PageSize:   c.cfg.PageSize,
		Total:      len(filtered),
		TotalPages: totalPages(len(filtered), c.cfg.PageSize),
	}
	start := (info.Page - 1) * info.PageSize
	end := start + info.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	if info.Total > 0 {
		info.From = start + 1
	}
	info.To = end
	return filtered[start:end], info
}

// Delete removes one record via the backend; only a confirmed deletion
// mutates the local collection. On failure the collection is untouched
// and the returned error carries the surfaceable message.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.remove(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	kept := c.records[:0]
	for _, record := range c.records {
		if convert.ToString(record["id"], "") != id {
			kept = append(kept, record)
		}
	}
	c.records = kept
	c.clampPageLocked()
	return nil
}

func (c *Controller) clampPageLocked() {
	c.clampPageForLocked(len(c.filteredLocked()))
}

func (c *Controller) clampPageForLocked(filteredCount int) {
	last := totalPages(filteredCount, c.cfg.PageSize)
	if c.page > last {
		c.page = last
	}
	if c.page < 1 {
		c.page = 1
	}
}

func totalPages(total, pageSize int) int {
	pages := int(math.Ceil(float64(total) / float64(pageSize)))
	if pages < 1 {
		return 1
	}
	return pages
}
