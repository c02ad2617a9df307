package draft

// GenerateDraftRequest represents the request to generate a meeting draft
type GenerateDraftRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,uuid"`
}

// DisposeDraftRequest represents the request to apply or reject a draft
type DisposeDraftRequest struct {
	Apply bool `json:"apply"`
}
