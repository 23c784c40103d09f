package stream

import (
	"encoding/json"
	"fmt"

	"github.com/oakmoss/platon/internal/models"
)

// StreamMessage is a Redis stream entry reduced to its string-valued
// fields, ready for application-level parsing.
type StreamMessage struct {
	ID     string
	Fields map[string]string
}

// ParseBatchJob decodes the "payload" field of a StreamMessage into a
// models.BatchJob. The producer (the detect-batch HTTP handler) writes
// that field as the job's JSON encoding.
func ParseBatchJob(msg *StreamMessage) (*models.BatchJob, error) {
	payload, ok := msg.Fields["payload"]
	if !ok {
		return nil, fmt.Errorf("stream message %s missing payload field", msg.ID)
	}

	var job models.BatchJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil, fmt.Errorf("decode batch job payload: %w", err)
	}
	if job.ReportID == "" {
		return nil, fmt.Errorf("stream message %s has no reportId", msg.ID)
	}

	return &job, nil
}
