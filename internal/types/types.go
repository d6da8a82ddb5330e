// Package types provides type definitions for structured data shared across the pondus pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ModelScore is one model's entry on one leaderboard.
//
// Model is the source's own normalized spelling and SourceModelName is the raw
// string as the provider wrote it. The two are not guaranteed to resolve to
// the same canonical identity; callers that need identity equality must go
// through alias.Resolver rather than trust Model.
type ModelScore struct {
	Model           string                 `json:"model"`
	SourceModelName string                 `json:"source_model_name"`
	Metrics         map[string]MetricValue `json:"metrics"`
	Rank            *int                   `json:"rank,omitempty"`
}

// SourceResult holds everything one source produced for one query, including
// its failure state. A failed source still yields a SourceResult.
type SourceResult struct {
	Source    string       `json:"source"`
	FetchedAt *time.Time   `json:"fetched_at"`
	Status    SourceStatus `json:"status"`
	Scores    []ModelScore `json:"scores"`
}

// StatusKind enumerates the terminal states of a source fetch.
type StatusKind int

const (
	// StatusOk means the source was fetched fresh and parsed.
	StatusOk StatusKind = iota
	// StatusCached means the result was served from the freshness cache.
	StatusCached
	// StatusUnavailable means no attempt was made (missing key, tool not configured).
	StatusUnavailable
	// StatusError means an attempt was made and failed; Message says why.
	StatusError
)

// SourceStatus is the fetch outcome for one source. Error carries a message,
// the other kinds do not.
type SourceStatus struct {
	Kind    StatusKind
	Message string
}

// Ok returns an ok status.
func Ok() SourceStatus { return SourceStatus{Kind: StatusOk} }

// Cached returns a cached status.
func Cached() SourceStatus { return SourceStatus{Kind: StatusCached} }

// Unavailable returns an unavailable status.
func Unavailable() SourceStatus { return SourceStatus{Kind: StatusUnavailable} }

// Errorf returns an error status with a formatted message.
func Errorf(format string, args ...any) SourceStatus {
	return SourceStatus{Kind: StatusError, Message: fmt.Sprintf(format, args...)}
}

// MarshalJSON encodes ok/cached/unavailable as bare strings and error as
// {"error": message}, matching the on-disk and output format.
func (s SourceStatus) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case StatusOk:
		return json.Marshal("ok")
	case StatusCached:
		return json.Marshal("cached")
	case StatusUnavailable:
		return json.Marshal("unavailable")
	case StatusError:
		return json.Marshal(map[string]string{"error": s.Message})
	default:
		return nil, fmt.Errorf("unknown status kind %d", s.Kind)
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *SourceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		switch str {
		case "ok":
			*s = Ok()
		case "cached":
			*s = Cached()
		case "unavailable":
			*s = Unavailable()
		default:
			return fmt.Errorf("unknown status %q", str)
		}
		return nil
	}

	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}
	msg, ok := obj["error"]
	if !ok {
		return fmt.Errorf("invalid status object: missing error key")
	}
	*s = SourceStatus{Kind: StatusError, Message: msg}
	return nil
}

// String returns a short human-readable form for table output.
func (s SourceStatus) String() string {
	switch s.Kind {
	case StatusOk:
		return "ok"
	case StatusCached:
		return "cached"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error: " + s.Message
	default:
		return "unknown"
	}
}

// Output is the top-level result of a query, rendered by internal/render.
type Output struct {
	Timestamp time.Time      `json:"timestamp"`
	RunID     uuid.UUID      `json:"run_id"`
	Query     QueryInfo      `json:"query"`
	Sources   []SourceResult `json:"sources"`
}

// QueryInfo describes which query produced an Output and its parameters.
type QueryInfo struct {
	Type   string   `json:"type"`
	Model  string   `json:"model,omitempty"`
	Models []string `json:"models,omitempty"`
	Top    int      `json:"top,omitempty"`
}
