package dto

// MarkAsReadRequest for marking notifications read
type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// UnreadCountResponse for the unread badge
type UnreadCountResponse struct {
	Count int `json:"count"`
}
