package models

// FileInput is one named source file supplied in a request body.
type FileInput struct {
	Name string `json:"name" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// DetectRequest is the payload for POST /api/v1/detect.
type DetectRequest struct {
	File1          FileInput `json:"file1" binding:"required"`
	File2          FileInput `json:"file2" binding:"required"`
	Threshold      *float64  `json:"threshold,omitempty"`
	MinOccurrences *int      `json:"minOccurrences,omitempty"`
}

// BatchDetectRequest is the payload for POST /api/v1/detect-batch.
type BatchDetectRequest struct {
	Files          []FileInput `json:"files" binding:"required,min=2,dive"`
	Threshold      *float64    `json:"threshold,omitempty"`
	MinOccurrences *int        `json:"minOccurrences,omitempty"`
}

// BatchDetectAccepted is returned for a batch queued for async processing.
type BatchDetectAccepted struct {
	ReportID string `json:"reportId"`
	Status   Status `json:"status"`
}

// ErrorResponse is a standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
