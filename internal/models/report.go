package models

import (
	"time"

	"github.com/oakmoss/platon/internal/syntactic"
)

// Status is a batch report's lifecycle state.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Report is a batch detection job, queued through the Redis stream and
// persisted so a caller can poll GET /api/v1/report/:id for the outcome.
type Report struct {
	ReportID         string              `bson:"reportId" json:"reportId"`
	Status           Status              `bson:"status" json:"status"`
	Threshold        float64             `bson:"threshold" json:"threshold"`
	TotalComparisons int                 `bson:"totalComparisons" json:"totalComparisons"`
	SuspiciousPairs  int                 `bson:"suspiciousPairs" json:"suspiciousPairs"`
	ProcessingTime   int64               `bson:"processingTime" json:"processingTime"`
	Results          []*syntactic.Result `bson:"results,omitempty" json:"results,omitempty"`
	Error            string              `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// BatchJob is the message enqueued onto the Redis stream for a batch too
// large to run inline over HTTP.
type BatchJob struct {
	ReportID       string      `json:"reportId"`
	Files          []FileInput `json:"files"`
	Threshold      *float64    `json:"threshold,omitempty"`
	MinOccurrences *int        `json:"minOccurrences,omitempty"`
}
