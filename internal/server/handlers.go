package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KilimcininKorOglu/treelab/internal/logging"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// invalidNumber is reported for a missing or malformed key.
const invalidNumber = "invalid input: please enter a valid number"

// guardedWorkbench serializes access to a workbench.
type guardedWorkbench struct {
	mu sync.Mutex
	wb *workbench.Workbench
}

func (g *guardedWorkbench) do(fn func(wb *workbench.Workbench)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.wb)
}

// Handlers contains all HTTP API handlers.
type Handlers struct {
	state     *guardedWorkbench
	hub       *Hub
	logger    logging.Logger
	version   string
	startTime time.Time
}

// NewHandlers creates new handlers.
func NewHandlers(state *guardedWorkbench, hub *Hub, logger logging.Logger, version string) *Handlers {
	return &Handlers{
		state:     state,
		hub:       hub,
		logger:    logger,
		version:   version,
		startTime: time.Now(),
	}
}

// HandleHealth handles GET /api/v1/health
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     h.version,
		Uptime:      uptime.String(),
		UptimeSecs:  int64(uptime.Seconds()),
		StartTime:   h.startTime,
		FeedClients: h.hub.Count(),
	})
}

// HandleGetTree handles GET /api/v1/tree
func (h *Handlers) HandleGetTree(w http.ResponseWriter, r *http.Request) {
	var resp TreeResponse
	h.state.do(func(wb *workbench.Workbench) {
		resp = treeResponse(wb)
	})
	writeJSON(w, http.StatusOK, resp)
}

// HandleInsert handles POST /api/v1/tree/insert
func (h *Handlers) HandleInsert(w http.ResponseWriter, r *http.Request) {
	h.handleMutation(w, r, (*workbench.Workbench).Insert)
}

// HandleDelete handles POST /api/v1/tree/delete
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.handleMutation(w, r, (*workbench.Workbench).Delete)
}

func (h *Handlers) handleMutation(w http.ResponseWriter, r *http.Request, apply func(*workbench.Workbench, context.Context, int) bool) {
	var req KeyRequest
	if err := decodeBody(w, r, &req); err != nil || req.Key == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", invalidNumber)
		return
	}

	resp := MutationResponse{Key: *req.Key}
	h.state.do(func(wb *workbench.Workbench) {
		resp.Changed = apply(wb, r.Context(), *req.Key)
		resp.Version = wb.Version()
	})
	writeJSON(w, http.StatusOK, resp)
}

// HandleSearch handles GET /api/v1/tree/search?key=n
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	key, err := strconv.Atoi(r.URL.Query().Get("key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", invalidNumber)
		return
	}

	resp := SearchResponse{Key: key}
	h.state.do(func(wb *workbench.Workbench) {
		resp.Found = wb.Search(r.Context(), key)
		resp.Version = wb.Version()
	})
	writeJSON(w, http.StatusOK, resp)
}

// HandleSettings handles PUT /api/v1/tree/settings
// Both fields are checked before either is applied.
func (h *Handlers) HandleSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Kind == nil && req.Order == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "kind or order is required")
		return
	}

	var kind workbench.Kind
	if req.Kind != nil {
		k, err := workbench.ParseKind(*req.Kind)
		if err != nil {
			writeWorkbenchError(w, err)
			return
		}
		kind = k
	}

	var (
		resp TreeResponse
		err  error
	)
	h.state.do(func(wb *workbench.Workbench) {
		if req.Order != nil {
			if lo, hi := wb.OrderBounds(); *req.Order < lo || *req.Order > hi {
				// Rejected without touching either tree.
				err = wb.SetOrder(*req.Order)
				return
			}
		}
		if req.Kind != nil && kind != wb.Kind() {
			if err = wb.SetKind(kind); err != nil {
				return
			}
		}
		if req.Order != nil && *req.Order != wb.Order() {
			if err = wb.SetOrder(*req.Order); err != nil {
				return
			}
		}
		resp = treeResponse(wb)
	})
	if err != nil {
		writeWorkbenchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleReset handles POST /api/v1/tree/reset
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	var resp TreeResponse
	h.state.do(func(wb *workbench.Workbench) {
		wb.Reset()
		resp = treeResponse(wb)
	})
	writeJSON(w, http.StatusOK, resp)
}

func treeResponse(wb *workbench.Workbench) TreeResponse {
	return TreeResponse{
		Kind:     wb.Kind(),
		Order:    wb.Order(),
		Version:  wb.Version(),
		Keys:     wb.Print(),
		Stats:    wb.Stats(),
		Snapshot: wb.Snapshot(),
	}
}

func feedMessage(wb *workbench.Workbench, op workbench.Op) FeedMessage {
	return FeedMessage{
		Op:       op,
		Kind:     wb.Kind(),
		Order:    wb.Order(),
		Version:  wb.Version(),
		Snapshot: wb.Snapshot(),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// HandleFeed handles GET /api/v1/tree/feed
func (h *Handlers) HandleFeed(w http.ResponseWriter, r *http.Request) {
	h.hub.serve(w, r, func(c *feedClient) bool {
		var ok bool
		h.state.do(func(wb *workbench.Workbench) {
			ok = h.hub.register(c, feedMessage(wb, ""))
		})
		return ok
	})
}
