package api

// ErrorResponse is the body of every non-2xx reply. Details lists
// per-field validation failures.
type ErrorResponse struct {
	Error   string   `json:"error" example:"training not found"`
	Details []string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}
