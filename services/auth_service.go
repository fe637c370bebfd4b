package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/crypto/bcrypt"

	"github.com/nestorwheelock/buceo-feliz/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotStaff           = errors.New("staff access required")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles staff login and bearer-token auth.
type AuthService struct {
	Dynamo *DynamoService
}

// Authenticate checks email/password against the staff user store.
// Returns ErrInvalidCredentials for unknown users or bad passwords and
// ErrNotStaff for valid users without staff access.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.StaffUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsStaff {
		return nil, ErrNotStaff
	}

	return user, nil
}

// GetOrCreateToken returns the user's existing token, creating one when
// the user has never logged in before. Tokens are stable until revoked.
func (s *AuthService) GetOrCreateToken(ctx context.Context, user *models.StaffUser) (*models.AuthToken, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.AuthTokensTable, models.TokensByUserIndex,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: user.ID},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if len(items) > 0 {
		var token models.AuthToken
		if err := attributevalue.UnmarshalMap(items[0], &token); err != nil {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		return &token, nil
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, err
	}

	token := models.AuthToken{
		Key:       key,
		UserID:    user.ID,
		UserEmail: user.Email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.AuthTokensTable, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	log.Printf("🔑 Issued new auth token for user %s", user.Email)
	return &token, nil
}

// UserForToken resolves a bearer token to an active staff user.
func (s *AuthService) UserForToken(ctx context.Context, key string) (*models.StaffUser, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	item, err := s.Dynamo.GetItem(ctx, models.AuthTokensTable, map[string]types.AttributeValue{
		"token": &types.AttributeValueMemberS{Value: key},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	var token models.AuthToken
	if err := attributevalue.UnmarshalMap(item, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	user, err := s.userByEmail(ctx, token.UserEmail)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive || !user.IsStaff {
		return nil, ErrNotStaff
	}

	return user, nil
}

func (s *AuthService) userByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	item, err := s.Dynamo.GetItem(ctx, models.StaffUsersTable, map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	})
	if err != nil {
		return nil, err
	}

	var user models.StaffUser
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &user, nil
}

// generateTokenKey returns a 40-char hex token.
func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
