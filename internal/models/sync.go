package models

import (
	"net/http"
	"time"
)

// Outcome messages returned by the sync entry point. Callers key off these
// verbatim, so they are fixed strings rather than formatted errors.
const (
	MsgImportCompleted    = "Document import completed."
	MsgDataStoreNotReady  = "Data store not created."
	MsgNoArticlesReturned = "No Salesforce Knowledge articles returned."
	MsgNoAccessToken      = "No access token returned."
)

// SyncResult is the outcome of a single sync run
type SyncResult struct {
	SyncID     string    `json:"sync_id"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Fetched    int       `json:"fetched"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Failed     int       `json:"failed"`
	DurationMs int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}

// Succeeded reports whether the run completed the full import
func (r *SyncResult) Succeeded() bool {
	return r.StatusCode == http.StatusOK
}
