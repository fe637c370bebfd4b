package models

// Message is a single chat message. Partition key conversationId,
// sort key createdAt (RFC3339, lexically ordered).
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversation_id"`
	CreatedAt      string `dynamodbav:"createdAt" json:"created_at"`
	MessageID      string `dynamodbav:"messageId" json:"id"`
	SenderPersonID string `dynamodbav:"senderPersonId" json:"sender_person_id,omitempty"`
	Direction      string `dynamodbav:"direction" json:"direction"`
	Channel        string `dynamodbav:"channel" json:"channel"`
	FromAddress    string `dynamodbav:"fromAddress" json:"-"`
	ToAddress      string `dynamodbav:"toAddress" json:"-"`
	BodyText       string `dynamodbav:"bodyText" json:"body"`
	Status         string `dynamodbav:"status" json:"status"`
	SentAt         string `dynamodbav:"sentAt" json:"sent_at,omitempty"`
	ReadAt         string `dynamodbav:"readAt" json:"read_at,omitempty"`
}

// MessageView is the shape returned to the mobile app.
type MessageView struct {
	ID         string `json:"id"`
	Body       string `json:"body"`
	Direction  string `json:"direction"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	SenderName string `json:"sender_name"`
}
