package models

import "strings"

// Person is a customer or lead record.
type Person struct {
	ID              string `dynamodbav:"id" json:"id"`
	FirstName       string `dynamodbav:"firstName" json:"first_name"`
	LastName        string `dynamodbav:"lastName" json:"last_name"`
	Email           string `dynamodbav:"email" json:"email"`
	VisitorID       string `dynamodbav:"visitorId" json:"visitor_id,omitempty"`
	LeadStatus      string `dynamodbav:"leadStatus" json:"lead_status,omitempty"`
	LeadLostReason  string `dynamodbav:"leadLostReason" json:"lead_lost_reason,omitempty"`
	LeadConvertedAt string `dynamodbav:"leadConvertedAt" json:"lead_converted_at,omitempty"`
	Notes           string `dynamodbav:"notes" json:"notes,omitempty"`
	DeletedAt       string `dynamodbav:"deletedAt" json:"-"`
}

// DisplayName returns "First Last", falling back to email then "Unknown".
func (p *Person) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	if p.Email != "" {
		return p.Email
	}
	return "Unknown"
}

// Initials returns uppercase initials, "?" when there is no name.
func (p *Person) Initials() string {
	initials := ""
	if p.FirstName != "" {
		initials += strings.ToUpper(p.FirstName[:1])
	}
	if p.LastName != "" {
		initials += strings.ToUpper(p.LastName[:1])
	}
	if initials == "" {
		return "?"
	}
	return initials
}

// LeadStatusEvent is an audit record for a pipeline transition.
// Partition key personId, sort key createdAt.
type LeadStatusEvent struct {
	PersonID   string `dynamodbav:"personId" json:"person_id"`
	CreatedAt  string `dynamodbav:"createdAt" json:"created_at"`
	FromStatus string `dynamodbav:"fromStatus" json:"from_status"`
	ToStatus   string `dynamodbav:"toStatus" json:"to_status"`
	Actor      string `dynamodbav:"actor" json:"actor,omitempty"`
	Note       string `dynamodbav:"note" json:"note,omitempty"`
}

// DiverProfile holds certification and experience data for a converted lead.
type DiverProfile struct {
	PersonID           string `dynamodbav:"personId" json:"person_id"`
	TotalDives         int    `dynamodbav:"totalDives" json:"total_dives"`
	CertificationLevel string `dynamodbav:"certificationLevel" json:"certification_level"`
	CertCardKey        string `dynamodbav:"certCardKey" json:"cert_card_key,omitempty"`
	CreatedAt          string `dynamodbav:"createdAt" json:"created_at"`
}
