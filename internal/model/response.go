package model

// PriceResponse is the success envelope for a price lookup.
type PriceResponse struct {
	Results   []Product `json:"results"`
	Currency  string    `json:"currency"`
	Timestamp string    `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

// ErrorResponse is the JSON error body returned by the HTTP layer.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"requestId,omitempty"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
