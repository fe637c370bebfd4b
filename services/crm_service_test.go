package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestorwheelock/buceo-feliz/models"
)

type crmFixture struct {
	persons    map[string]models.Person
	profiles   map[string]models.DiverProfile
	excursions map[string]models.Excursion

	events  []models.LeadStatusEvent
	updates []string
}

func (f *crmFixture) service(t *testing.T) *CRMService {
	t.Helper()
	fake := &fakeDynamoClient{
		getFn: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			marshal := func(v interface{}) (*dynamodb.GetItemOutput, error) {
				item, err := attributevalue.MarshalMap(v)
				require.NoError(t, err)
				return &dynamodb.GetItemOutput{Item: item}, nil
			}
			switch *params.TableName {
			case models.PersonsTable:
				if person, ok := f.persons[stringAttr(params.Key, "id")]; ok {
					return marshal(person)
				}
			case models.DiverProfilesTable:
				if profile, ok := f.profiles[stringAttr(params.Key, "personId")]; ok {
					return marshal(profile)
				}
			case models.ExcursionsTable:
				if excursion, ok := f.excursions[stringAttr(params.Key, "id")]; ok {
					return marshal(excursion)
				}
			}
			return &dynamodb.GetItemOutput{}, nil
		},
		putFn: func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			switch *params.TableName {
			case models.LeadStatusEventsTable:
				var event models.LeadStatusEvent
				require.NoError(t, attributevalue.UnmarshalMap(params.Item, &event))
				f.events = append(f.events, event)
			case models.DiverProfilesTable:
				var profile models.DiverProfile
				require.NoError(t, attributevalue.UnmarshalMap(params.Item, &profile))
				if f.profiles == nil {
					f.profiles = map[string]models.DiverProfile{}
				}
				f.profiles[profile.PersonID] = profile
			}
			return &dynamodb.PutItemOutput{}, nil
		},
		updateFn: func(ctx context.Context, params *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			f.updates = append(f.updates, *params.UpdateExpression)
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}
	return &CRMService{Dynamo: &DynamoService{Client: fake}}
}

func TestSetLeadStatus(t *testing.T) {
	fixture := &crmFixture{
		persons: map[string]models.Person{
			"p1": {ID: "p1", FirstName: "Luis", LeadStatus: models.LeadStatusNew},
		},
	}
	svc := fixture.service(t)

	event, err := svc.SetLeadStatus(context.Background(), "p1", models.LeadStatusContacted, "ana@buceofeliz.com", "called back", "")
	require.NoError(t, err)

	assert.Equal(t, models.LeadStatusNew, event.FromStatus)
	assert.Equal(t, models.LeadStatusContacted, event.ToStatus)
	assert.Equal(t, "called back", event.Note)
	require.Len(t, fixture.events, 1)
	require.Len(t, fixture.updates, 1)
	assert.NotContains(t, fixture.updates[0], "leadLostReason")
}

func TestSetLeadStatusLostStampsReason(t *testing.T) {
	fixture := &crmFixture{
		persons: map[string]models.Person{
			"p1": {ID: "p1", LeadStatus: models.LeadStatusQualified},
		},
	}
	svc := fixture.service(t)

	_, err := svc.SetLeadStatus(context.Background(), "p1", models.LeadStatusLost, "", "", "chose another shop")
	require.NoError(t, err)
	require.Len(t, fixture.updates, 1)
	assert.Contains(t, fixture.updates[0], "leadLostReason")
}

func TestSetLeadStatusInvalid(t *testing.T) {
	fixture := &crmFixture{}
	svc := fixture.service(t)

	_, err := svc.SetLeadStatus(context.Background(), "p1", "vanished", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidLeadStatus)
}

func TestConvertToDiverCreatesProfile(t *testing.T) {
	fixture := &crmFixture{
		persons: map[string]models.Person{
			"p1": {ID: "p1", LeadStatus: models.LeadStatusQualified, Notes: "Experience: 10-50 dives"},
		},
	}
	svc := fixture.service(t)

	profile, err := svc.ConvertToDiver(context.Background(), "p1", "ana@buceofeliz.com")
	require.NoError(t, err)

	assert.Equal(t, 30, profile.TotalDives)
	assert.Equal(t, models.CertNone, profile.CertificationLevel)
	require.Len(t, fixture.events, 1)
	assert.Equal(t, models.LeadStatusConverted, fixture.events[0].ToStatus)
	require.Len(t, fixture.updates, 1)
	assert.Contains(t, fixture.updates[0], "leadConvertedAt")
}

func TestConvertToDiverReusesProfile(t *testing.T) {
	fixture := &crmFixture{
		persons: map[string]models.Person{
			"p1": {ID: "p1", LeadStatus: models.LeadStatusQualified},
		},
		profiles: map[string]models.DiverProfile{
			"p1": {PersonID: "p1", TotalDives: 200, CertificationLevel: models.CertRescue},
		},
	}
	svc := fixture.service(t)

	profile, err := svc.ConvertToDiver(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 200, profile.TotalDives)
	assert.Equal(t, models.CertRescue, profile.CertificationLevel)
}

func TestConvertToDiverRequiresLead(t *testing.T) {
	fixture := &crmFixture{
		persons: map[string]models.Person{
			"p1": {ID: "p1"},
		},
	}
	svc := fixture.service(t)

	_, err := svc.ConvertToDiver(context.Background(), "p1", "")
	assert.ErrorIs(t, err, ErrNotALead)
}

func TestEstimateTotalDives(t *testing.T) {
	assert.Equal(t, 0, EstimateTotalDives("Never dived before"))
	assert.Equal(t, 5, EstimateTotalDives("Experience: 1-10 dives"))
	assert.Equal(t, 30, EstimateTotalDives("Experience: 10-50 dives"))
	assert.Equal(t, 75, EstimateTotalDives("logged 50+ dives"))
	assert.Equal(t, 0, EstimateTotalDives(""))
}

func TestCheckEligibility(t *testing.T) {
	fixture := &crmFixture{
		excursions: map[string]models.Excursion{
			"e1": {ID: "e1", Name: "Cenote Deep", Capacity: 8, BookedCount: 4, MinCertification: models.CertAdvanced, MaxDepthMeters: 30},
		},
		profiles: map[string]models.DiverProfile{
			"ok":      {PersonID: "ok", CertificationLevel: models.CertRescue},
			"novice":  {PersonID: "novice", CertificationLevel: models.CertOpenWater},
			"uncert":  {PersonID: "uncert", CertificationLevel: models.CertNone},
		},
	}
	svc := fixture.service(t)

	result, err := svc.CheckEligibility(context.Background(), "e1", "ok")
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reasons)

	result, err = svc.CheckEligibility(context.Background(), "e1", "novice")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	// Under-certified and over the depth limit
	assert.Len(t, result.Reasons, 2)

	result, err = svc.CheckEligibility(context.Background(), "e1", "missing")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{"no diver profile on record"}, result.Reasons)
}

func TestCheckEligibilityFullyBooked(t *testing.T) {
	fixture := &crmFixture{
		excursions: map[string]models.Excursion{
			"e1": {ID: "e1", Capacity: 4, BookedCount: 4, MinCertification: models.CertOpenWater, MaxDepthMeters: 12},
		},
		profiles: map[string]models.DiverProfile{
			"p1": {PersonID: "p1", CertificationLevel: models.CertInstructor},
		},
	}
	svc := fixture.service(t)

	result, err := svc.CheckEligibility(context.Background(), "e1", "p1")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, []string{"excursion is fully booked"}, result.Reasons)
}

func TestCheckEligibilityUnknownExcursion(t *testing.T) {
	fixture := &crmFixture{}
	svc := fixture.service(t)

	_, err := svc.CheckEligibility(context.Background(), "nope", "p1")
	assert.ErrorIs(t, err, ErrExcursionNotFound)
}
