package models

const (
	// TaskTypeImageAnalysis is the asynq task type for person-counting jobs
	TaskTypeImageAnalysis = "analysis:image"
	// QueueImageAnalysis is the durable queue shared by producer and worker
	QueueImageAnalysis = "image_analysis"
)

// ImageAnalysisPayload is the message published by the API and consumed by
// the worker. Fire-and-forget: no result ever travels back to the caller.
type ImageAnalysisPayload struct {
	URL    string `json:"url"`
	UserID int    `json:"user_id"`
}

// AnalysisRequest is the payload for POST /analysis
type AnalysisRequest struct {
	URL string `json:"url"`
}
