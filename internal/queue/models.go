package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a chapter.
type Status string

const (
	StatusPending      Status = "pending"
	StatusSynthesizing Status = "synthesizing"
	StatusSynthesized  Status = "synthesized"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusValidating   Status = "validating"
	StatusValidated    Status = "validated"
	StatusMerged       Status = "merged"
	StatusFailed       Status = "failed"
	StatusReview       Status = "review"
)

var allStatuses = []Status{
	StatusPending,
	StatusSynthesizing,
	StatusSynthesized,
	StatusTranscribing,
	StatusTranscribed,
	StatusValidating,
	StatusValidated,
	StatusMerged,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusSynthesizing: {},
	StatusTranscribing: {},
	StatusValidating:   {},
}

type statusTransition struct {
	from Status
	to   Status
}

// Rollback targets used when a run is interrupted mid-stage.
var stageRollbackTransitions = []statusTransition{
	{from: StatusSynthesizing, to: StatusPending},
	{from: StatusTranscribing, to: StatusSynthesized},
	{from: StatusValidating, to: StatusTranscribed},
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Review     int
	Merged     int
}

// Chapter represents one narrated chapter persisted in SQLite.
type Chapter struct {
	ID              int64
	Name            string
	TextPath        string
	AudioPath       string
	SubtitlePath    string
	Status          Status
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	DurationSeconds float64
	RunID           string
	NeedsReview     bool
	ReviewReason    string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight operation.
func (c Chapter) IsProcessing() bool {
	_, ok := processingStatuses[c.Status]
	return ok
}

// IsProcessingStatus reports whether a status reflects an in-flight operation.
func IsProcessingStatus(status Status) bool {
	_, ok := processingStatuses[status]
	return ok
}

// SetProgress updates all three progress fields atomically.
func (c *Chapter) SetProgress(stage, message string, percent float64) {
	c.ProgressStage = stage
	c.ProgressMessage = message
	c.ProgressPercent = percent
}

// SetFailed marks the chapter as failed with the given error message.
func (c *Chapter) SetFailed(message string) {
	c.Status = StatusFailed
	c.ErrorMessage = message
	c.ProgressPercent = 0
	c.ProgressMessage = message
	c.ProgressStage = "Failed"
}

// SetReview flags the chapter for manual attention without retrying it.
func (c *Chapter) SetReview(reason string) {
	c.Status = StatusReview
	c.NeedsReview = true
	c.ReviewReason = reason
	c.ProgressStage = "Review"
	c.ProgressMessage = reason
}
