package jobs

// Payload is the body every notification job carries. Kind specific
// fields go in Data so the handler can stay generic.
type Payload struct {
	EntityID     string                 `json:"entity_id"`
	ProjectID    string                 `json:"project_id,omitempty"`
	RecipientIDs []string               `json:"recipient_ids,omitempty"`
	Email        string                 `json:"email,omitempty"`
	Subject      string                 `json:"subject,omitempty"`
	Data         map[string]interface{} `json:"data,omitempty"`
}
