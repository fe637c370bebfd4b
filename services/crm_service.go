package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nestorwheelock/buceo-feliz/models"
)

var (
	ErrNotALead          = errors.New("person is not a lead")
	ErrExcursionNotFound = errors.New("excursion not found")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

// CRMService owns the lead pipeline and booking eligibility rules.
type CRMService struct {
	Dynamo *DynamoService
}

// SetLeadStatus moves a lead to a new pipeline status, stamping the lost
// reason when applicable, and records an audit event.
func (s *CRMService) SetLeadStatus(ctx context.Context, personID, newStatus, actor, note, lostReason string) (*models.LeadStatusEvent, error) {
	if !models.ValidLeadStatuses[newStatus] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLeadStatus, newStatus)
	}

	person, err := s.PersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	oldStatus := person.LeadStatus

	updateExpression := "SET leadStatus = :status"
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: newStatus},
	}
	if newStatus == models.LeadStatusLost && lostReason != "" {
		updateExpression += ", leadLostReason = :lostReason"
		values[":lostReason"] = &types.AttributeValueMemberS{Value: lostReason}
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.PersonsTable, updateExpression,
		personKey(personID), values, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}

	event := models.LeadStatusEvent{
		PersonID:   personID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		FromStatus: oldStatus,
		ToStatus:   newStatus,
		Actor:      actor,
		Note:       note,
	}
	if err := s.Dynamo.PutItem(ctx, models.LeadStatusEventsTable, event); err != nil {
		return nil, fmt.Errorf("failed to record status event: %w", err)
	}

	log.Printf("📈 Lead %s: %s → %s", personID, oldStatus, newStatus)
	return &event, nil
}

// ConvertToDiver converts a lead into a diver profile. Experience is
// estimated from the intake notes; an existing profile is reused.
func (s *CRMService) ConvertToDiver(ctx context.Context, personID, actor string) (*models.DiverProfile, error) {
	person, err := s.PersonByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	if person.LeadStatus == "" {
		return nil, ErrNotALead
	}

	oldStatus := person.LeadStatus
	now := time.Now().UTC().Format(time.RFC3339)

	profile, err := s.diverProfileByPersonID(ctx, personID)
	if err != nil {
		if !errors.Is(err, ErrItemNotFound) {
			return nil, err
		}
		profile = &models.DiverProfile{
			PersonID:           personID,
			TotalDives:         EstimateTotalDives(person.Notes),
			CertificationLevel: models.CertNone,
			CreatedAt:          now,
		}
		if err := s.Dynamo.PutItem(ctx, models.DiverProfilesTable, profile); err != nil {
			return nil, fmt.Errorf("failed to create diver profile: %w", err)
		}
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.PersonsTable,
		"SET leadStatus = :converted, leadConvertedAt = :now",
		personKey(personID),
		map[string]types.AttributeValue{
			":converted": &types.AttributeValueMemberS{Value: models.LeadStatusConverted},
			":now":       &types.AttributeValueMemberS{Value: now},
		}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to mark lead converted: %w", err)
	}

	event := models.LeadStatusEvent{
		PersonID:   personID,
		CreatedAt:  now,
		FromStatus: oldStatus,
		ToStatus:   models.LeadStatusConverted,
		Actor:      actor,
	}
	if err := s.Dynamo.PutItem(ctx, models.LeadStatusEventsTable, event); err != nil {
		return nil, fmt.Errorf("failed to record conversion event: %w", err)
	}

	log.Printf("🤿 Lead %s converted to diver (est. %d dives)", personID, profile.TotalDives)
	return profile, nil
}

// EligibilityResult explains whether a diver may book an excursion.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// CheckEligibility applies the booking rules: the trip must have space,
// the diver's certification must rank at or above the minimum, and the
// trip depth must be within the diver's certification limit.
func (s *CRMService) CheckEligibility(ctx context.Context, excursionID, personID string) (*EligibilityResult, error) {
	excursion, err := s.excursionByID(ctx, excursionID)
	if err != nil {
		return nil, err
	}

	profile, err := s.diverProfileByPersonID(ctx, personID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return &EligibilityResult{Reasons: []string{"no diver profile on record"}}, nil
		}
		return nil, err
	}

	result := &EligibilityResult{Eligible: true}

	if excursion.BookedCount >= excursion.Capacity {
		result.Eligible = false
		result.Reasons = append(result.Reasons, "excursion is fully booked")
	}
	if models.CertRank(profile.CertificationLevel) < models.CertRank(excursion.MinCertification) {
		result.Eligible = false
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("requires %s certification or higher", excursion.MinCertification))
	}
	if limit := models.CertDepthLimitMeters(profile.CertificationLevel); excursion.MaxDepthMeters > limit {
		result.Eligible = false
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("trip depth %dm exceeds certification limit of %dm", excursion.MaxDepthMeters, limit))
	}

	return result, nil
}

// EstimateTotalDives derives a dive count from free-text intake notes.
func EstimateTotalDives(notes string) int {
	switch {
	case strings.Contains(notes, "Never dived"):
		return 0
	case strings.Contains(notes, "1-10"):
		return 5
	case strings.Contains(notes, "10-50"):
		return 30
	case strings.Contains(notes, "50+"):
		return 75
	default:
		return 0
	}
}

// PersonByID fetches a non-deleted person record.
func (s *CRMService) PersonByID(ctx context.Context, id string) (*models.Person, error) {
	item, err := s.Dynamo.GetItem(ctx, models.PersonsTable, personKey(id))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	var person models.Person
	if err := attributevalue.UnmarshalMap(item, &person); err != nil {
		return nil, fmt.Errorf("failed to parse person: %w", err)
	}
	if person.DeletedAt != "" {
		return nil, ErrPersonNotFound
	}
	return &person, nil
}

func (s *CRMService) diverProfileByPersonID(ctx context.Context, personID string) (*models.DiverProfile, error) {
	item, err := s.Dynamo.GetItem(ctx, models.DiverProfilesTable, map[string]types.AttributeValue{
		"personId": &types.AttributeValueMemberS{Value: personID},
	})
	if err != nil {
		return nil, err
	}

	var profile models.DiverProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse diver profile: %w", err)
	}
	return &profile, nil
}

func (s *CRMService) excursionByID(ctx context.Context, id string) (*models.Excursion, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ExcursionsTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrExcursionNotFound
		}
		return nil, err
	}

	var excursion models.Excursion
	if err := attributevalue.UnmarshalMap(item, &excursion); err != nil {
		return nil, fmt.Errorf("failed to parse excursion: %w", err)
	}
	return &excursion, nil
}

func personKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
