package dto

// CreateMessageRequest is the JSON body for POST /messages.
type CreateMessageRequest struct {
	PostedBy int64  `json:"posted_by"`
	Text     string `json:"message_text"`
	PostedAt int64  `json:"time_posted_epoch"` // optional, epoch seconds; stamped by the server when absent
}

// UpdateMessageRequest is the JSON body for PATCH /messages/{message_id}.
type UpdateMessageRequest struct {
	Text string `json:"message_text"`
}

type MessageResponse struct {
	ID       int64  `json:"message_id"`
	PostedBy int64  `json:"posted_by"`
	Text     string `json:"message_text"`
	PostedAt int64  `json:"time_posted_epoch"`
}

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
