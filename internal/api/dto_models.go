package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message
	Details string `json:"details,omitempty"` // More specific details, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OwnerMutationResponse is returned by the assign, transfer and remove
// occupancy endpoints.
type OwnerMutationResponse struct {
	Message string `json:"message"`
	OwnerID string `json:"ownerId,omitempty"`
}
