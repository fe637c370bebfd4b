package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestorwheelock/buceo-feliz/models"
)

// deviceFixture wires an FCMService over canned device records.
type deviceFixture struct {
	devices map[string]models.FCMDevice // keyed by registrationId
	getErr  error

	puts    []models.FCMDevice
	updates []string
}

func (f *deviceFixture) service(t *testing.T) *FCMService {
	t.Helper()
	fake := &fakeDynamoClient{
		getFn: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			if f.getErr != nil {
				return nil, f.getErr
			}
			if device, ok := f.devices[stringAttr(params.Key, "registrationId")]; ok {
				item, err := attributevalue.MarshalMap(device)
				require.NoError(t, err)
				return &dynamodb.GetItemOutput{Item: item}, nil
			}
			return &dynamodb.GetItemOutput{}, nil
		},
		putFn: func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			var device models.FCMDevice
			require.NoError(t, attributevalue.UnmarshalMap(params.Item, &device))
			f.puts = append(f.puts, device)
			return &dynamodb.PutItemOutput{}, nil
		},
		updateFn: func(ctx context.Context, params *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			f.updates = append(f.updates, *params.UpdateExpression)
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}
	return &FCMService{Dynamo: &DynamoService{Client: fake}}
}

func staffUser() *models.StaffUser {
	return &models.StaffUser{ID: "u1", Email: "ana@buceofeliz.com", IsStaff: true}
}

func TestRegisterDeviceNew(t *testing.T) {
	fixture := &deviceFixture{}
	svc := fixture.service(t)

	status, err := svc.RegisterDevice(context.Background(), staffUser(), models.FCMDevice{
		RegistrationID: "token-1",
		DeviceName:     "Pixel 7",
	})
	require.NoError(t, err)
	assert.Equal(t, "registered", status)

	require.Len(t, fixture.puts, 1)
	stored := fixture.puts[0]
	assert.Equal(t, "u1", stored.UserID)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 0, stored.FailureCount)
	assert.Equal(t, "android", stored.Platform)
	assert.NotEmpty(t, stored.CreatedAt)
}

func TestRegisterDeviceExistingKeepsCreatedAt(t *testing.T) {
	fixture := &deviceFixture{
		devices: map[string]models.FCMDevice{
			"token-1": {
				UserID:         "u1",
				RegistrationID: "token-1",
				IsActive:       false,
				FailureCount:   3,
				CreatedAt:      "2025-01-02T03:04:05Z",
			},
		},
	}
	svc := fixture.service(t)

	status, err := svc.RegisterDevice(context.Background(), staffUser(), models.FCMDevice{
		RegistrationID: "token-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "updated", status)

	// Reactivated with failures cleared, original registration time kept
	require.Len(t, fixture.puts, 1)
	stored := fixture.puts[0]
	assert.True(t, stored.IsActive)
	assert.Equal(t, 0, stored.FailureCount)
	assert.Equal(t, "2025-01-02T03:04:05Z", stored.CreatedAt)
}

func TestUnregisterDeviceDeactivates(t *testing.T) {
	fixture := &deviceFixture{
		devices: map[string]models.FCMDevice{
			"token-1": {UserID: "u1", RegistrationID: "token-1", IsActive: true},
		},
	}
	svc := fixture.service(t)

	found, err := svc.UnregisterDevice(context.Background(), staffUser(), "token-1")
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, fixture.updates, 1)
	assert.Contains(t, fixture.updates[0], "isActive")
}

func TestUnregisterDeviceNotFound(t *testing.T) {
	fixture := &deviceFixture{}
	svc := fixture.service(t)

	found, err := svc.UnregisterDevice(context.Background(), staffUser(), "never-registered")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, fixture.updates)
}

func TestUnregisterDeviceStoreErrorPropagates(t *testing.T) {
	fixture := &deviceFixture{getErr: errors.New("throughput exceeded")}
	svc := fixture.service(t)

	_, err := svc.UnregisterDevice(context.Background(), staffUser(), "token-1")
	assert.Error(t, err)
	assert.Empty(t, fixture.updates)
}
