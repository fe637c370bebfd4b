package models

// DynamoDB table names
const (
	StaffUsersTable       = "StaffUser"
	AuthTokensTable       = "AuthToken"
	FCMDevicesTable       = "FCMDevice"
	ConversationsTable    = "Conversation"
	MessagesTable         = "Message"
	PersonsTable          = "Person"
	LeadStatusEventsTable = "LeadStatusEvent"
	DiverProfilesTable    = "DiverProfile"
	ExcursionsTable       = "Excursion"
)

// GSI names
const (
	TokensByUserIndex = "userId-index"
)

// Conversation statuses
const (
	ConversationStatusOpen    = "open"
	ConversationStatusPending = "pending"
	ConversationStatusClosed  = "closed"
)

// Message directions
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message statuses
const (
	MessageStatusQueued    = "queued"
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// Message channels
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
)

// Lead pipeline statuses
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// ValidLeadStatuses is the allowed target set for pipeline transitions.
var ValidLeadStatuses = map[string]bool{
	LeadStatusNew:       true,
	LeadStatusContacted: true,
	LeadStatusQualified: true,
	LeadStatusConverted: true,
	LeadStatusLost:      true,
}

// Certification levels, lowest to highest
const (
	CertNone       = "none"
	CertOpenWater  = "open_water"
	CertAdvanced   = "advanced"
	CertRescue     = "rescue"
	CertDivemaster = "divemaster"
	CertInstructor = "instructor"
)
