package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nestorwheelock/buceo-feliz/models"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func stringAttr(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

func newAuthService(t *testing.T, users map[string]models.StaffUser, tokens map[string]models.AuthToken) *AuthService {
	t.Helper()
	fake := &fakeDynamoClient{
		getFn: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			switch *params.TableName {
			case models.StaffUsersTable:
				email := stringAttr(params.Key, "email")
				if user, ok := users[email]; ok {
					item, err := attributevalue.MarshalMap(user)
					require.NoError(t, err)
					return &dynamodb.GetItemOutput{Item: item}, nil
				}
			case models.AuthTokensTable:
				key := stringAttr(params.Key, "token")
				if token, ok := tokens[key]; ok {
					item, err := attributevalue.MarshalMap(token)
					require.NoError(t, err)
					return &dynamodb.GetItemOutput{Item: item}, nil
				}
			}
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	return &AuthService{Dynamo: &DynamoService{Client: fake}}
}

func TestAuthenticateSuccess(t *testing.T) {
	users := map[string]models.StaffUser{
		"ana@buceofeliz.com": {
			ID:           "u1",
			Email:        "ana@buceofeliz.com",
			PasswordHash: hashPassword(t, "secret"),
			IsStaff:      true,
			IsActive:     true,
		},
	}
	auth := newAuthService(t, users, nil)

	user, err := auth.Authenticate(context.Background(), "  Ana@BuceoFeliz.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	users := map[string]models.StaffUser{
		"ana@buceofeliz.com": {
			ID:           "u1",
			Email:        "ana@buceofeliz.com",
			PasswordHash: hashPassword(t, "secret"),
			IsStaff:      true,
			IsActive:     true,
		},
	}
	auth := newAuthService(t, users, nil)

	_, err := auth.Authenticate(context.Background(), "ana@buceofeliz.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	auth := newAuthService(t, nil, nil)

	_, err := auth.Authenticate(context.Background(), "ghost@buceofeliz.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateNonStaff(t *testing.T) {
	users := map[string]models.StaffUser{
		"guest@buceofeliz.com": {
			ID:           "u2",
			Email:        "guest@buceofeliz.com",
			PasswordHash: hashPassword(t, "secret"),
			IsStaff:      false,
			IsActive:     true,
		},
	}
	auth := newAuthService(t, users, nil)

	_, err := auth.Authenticate(context.Background(), "guest@buceofeliz.com", "secret")
	assert.ErrorIs(t, err, ErrNotStaff)
}

func TestUserForTokenValid(t *testing.T) {
	users := map[string]models.StaffUser{
		"ana@buceofeliz.com": {
			ID:       "u1",
			Email:    "ana@buceofeliz.com",
			IsStaff:  true,
			IsActive: true,
		},
	}
	tokens := map[string]models.AuthToken{
		"tok123": {Key: "tok123", UserID: "u1", UserEmail: "ana@buceofeliz.com"},
	}
	auth := newAuthService(t, users, tokens)

	user, err := auth.UserForToken(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, "ana@buceofeliz.com", user.Email)
}

func TestUserForTokenUnknown(t *testing.T) {
	auth := newAuthService(t, nil, nil)

	_, err := auth.UserForToken(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserForTokenInactiveUser(t *testing.T) {
	users := map[string]models.StaffUser{
		"ana@buceofeliz.com": {
			ID:       "u1",
			Email:    "ana@buceofeliz.com",
			IsStaff:  true,
			IsActive: false,
		},
	}
	tokens := map[string]models.AuthToken{
		"tok123": {Key: "tok123", UserID: "u1", UserEmail: "ana@buceofeliz.com"},
	}
	auth := newAuthService(t, users, tokens)

	_, err := auth.UserForToken(context.Background(), "tok123")
	assert.ErrorIs(t, err, ErrNotStaff)
}

func TestGetOrCreateTokenReusesExisting(t *testing.T) {
	existing := models.AuthToken{Key: "tok123", UserID: "u1", UserEmail: "ana@buceofeliz.com"}
	item, err := attributevalue.MarshalMap(existing)
	require.NoError(t, err)

	puts := 0
	fake := &fakeDynamoClient{
		queryFn: func(ctx context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil
		},
		putFn: func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			puts++
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	auth := &AuthService{Dynamo: &DynamoService{Client: fake}}

	token, err := auth.GetOrCreateToken(context.Background(), &models.StaffUser{ID: "u1", Email: "ana@buceofeliz.com"})
	require.NoError(t, err)
	assert.Equal(t, "tok123", token.Key)
	assert.Zero(t, puts)
}

func TestGetOrCreateTokenCreatesNew(t *testing.T) {
	var stored models.AuthToken
	fake := &fakeDynamoClient{
		putFn: func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			require.NoError(t, attributevalue.UnmarshalMap(params.Item, &stored))
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	auth := &AuthService{Dynamo: &DynamoService{Client: fake}}

	token, err := auth.GetOrCreateToken(context.Background(), &models.StaffUser{ID: "u1", Email: "ana@buceofeliz.com"})
	require.NoError(t, err)
	assert.Len(t, token.Key, 40)
	assert.Equal(t, token.Key, stored.Key)
	assert.Equal(t, "u1", stored.UserID)
}
