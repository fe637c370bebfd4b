package models

// Conversation links a chat thread to a Person record.
type Conversation struct {
	ID             string `dynamodbav:"id" json:"id"`
	PersonID       string `dynamodbav:"personId" json:"person_id"`
	Status         string `dynamodbav:"status" json:"status"`
	LastOutboundAt string `dynamodbav:"lastOutboundAt" json:"last_outbound_at,omitempty"`
	UpdatedAt      string `dynamodbav:"updatedAt" json:"updated_at"`
	DeletedAt      string `dynamodbav:"deletedAt" json:"-"`
}

// ConversationSummary is the list-view shape returned to the mobile app.
type ConversationSummary struct {
	ID              string  `json:"id"`
	PersonID        string  `json:"person_id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Initials        string  `json:"initials"`
	LastMessage     string  `json:"last_message"`
	LastMessageTime *string `json:"last_message_time"`
	NeedsReply      bool    `json:"needs_reply"`
	UnreadCount     int     `json:"unread_count"`
	Status          string  `json:"status"`
}
