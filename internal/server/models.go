package server

import (
	"time"

	"github.com/KilimcininKorOglu/treelab/internal/storage/snapshot"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Uptime      string    `json:"uptime"`
	UptimeSecs  int64     `json:"uptimeSeconds"`
	StartTime   time.Time `json:"startTime"`
	FeedClients int       `json:"feedClients"`
}

// KeyRequest carries the key of an insert or delete.
type KeyRequest struct {
	Key *int `json:"key"`
}

// MutationResponse reports the outcome of an insert or delete.
type MutationResponse struct {
	Key     int    `json:"key"`
	Changed bool   `json:"changed"`
	Version uint64 `json:"version"`
}

// SearchResponse reports the outcome of a search.
type SearchResponse struct {
	Key     int    `json:"key"`
	Found   bool   `json:"found"`
	Version uint64 `json:"version"`
}

// SettingsRequest changes the selected kind, the order, or both.
type SettingsRequest struct {
	Kind  *string `json:"kind,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// TreeResponse describes the selected tree.
type TreeResponse struct {
	Kind     workbench.Kind  `json:"kind"`
	Order    int             `json:"order"`
	Version  uint64          `json:"version"`
	Keys     []int           `json:"keys"`
	Stats    workbench.Stats `json:"stats"`
	Snapshot *snapshot.Node  `json:"snapshot"`
}

// FeedMessage is pushed to WebSocket clients after every change.
type FeedMessage struct {
	Op       workbench.Op   `json:"op,omitempty"`
	Kind     workbench.Kind `json:"kind"`
	Order    int            `json:"order"`
	Version  uint64         `json:"version"`
	Snapshot *snapshot.Node `json:"snapshot"`
}
