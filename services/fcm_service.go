package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"google.golang.org/api/option"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/utils"
)

// messagingClient is the slice of *messaging.Client we use; tests fake it.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMService registers mobile devices and delivers push notifications.
// Push is best-effort: when Firebase credentials are absent the service
// still manages devices but skips delivery.
type FCMService struct {
	Dynamo *DynamoService
	client messagingClient
}

// NewFCMService initializes the Firebase Admin SDK. A missing credential
// file disables push with a warning rather than failing startup.
func NewFCMService(ctx context.Context, credentialsPath string, dynamo *DynamoService) *FCMService {
	svc := &FCMService{Dynamo: dynamo}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		log.Printf("⚠️ Firebase init failed, push notifications disabled: %v", err)
		return svc
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("⚠️ Firebase messaging unavailable, push notifications disabled: %v", err)
		return svc
	}

	log.Println("✅ Firebase Admin SDK initialized")
	svc.client = client
	return svc
}

// RegisterDevice upserts a device for the user. Re-registering an existing
// token reactivates it, clears its failure count and keeps the original
// registration timestamp.
func (s *FCMService) RegisterDevice(ctx context.Context, user *models.StaffUser, device models.FCMDevice) (string, error) {
	device.UserID = user.ID
	device.IsActive = true
	device.FailureCount = 0
	if device.Platform == "" {
		device.Platform = "android"
	}

	status := "registered"
	existing, err := s.Dynamo.GetItem(ctx, models.FCMDevicesTable, deviceKey(user.ID, device.RegistrationID))
	if err == nil {
		status = "updated"
		device.CreatedAt = utils.ExtractString(existing, "createdAt")
	}
	if device.CreatedAt == "" {
		device.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.Dynamo.PutItem(ctx, models.FCMDevicesTable, device); err != nil {
		return "", fmt.Errorf("failed to store device: %w", err)
	}

	log.Printf("📱 Device %s for user %s (%s)", status, user.Email, device.DeviceName)
	return status, nil
}

// UnregisterDevice deactivates a device token. Returns false when the
// token was never registered for this user.
func (s *FCMService) UnregisterDevice(ctx context.Context, user *models.StaffUser, registrationID string) (bool, error) {
	_, err := s.Dynamo.GetItem(ctx, models.FCMDevicesTable, deviceKey(user.ID, registrationID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up device: %w", err)
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.FCMDevicesTable,
		"SET isActive = :false",
		deviceKey(user.ID, registrationID),
		map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate device: %w", err)
	}
	return true, nil
}

// SendPush delivers a notification to a single device token.
func (s *FCMService) SendPush(ctx context.Context, registrationID, title, body string, data map[string]string) error {
	if s.client == nil {
		log.Println("⚠️ Firebase not initialized, skipping push notification")
		return nil
	}

	msg := &messaging.Message{
		Token: registrationID,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Title:                 title,
				Body:                  body,
				Sound:                 "default",
				DefaultSound:          true,
				DefaultVibrateTimings: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound:            "default",
					ContentAvailable: true,
				},
			},
		},
	}

	resp, err := s.client.Send(ctx, msg)
	if err != nil {
		return err
	}

	log.Printf("✅ FCM push sent: %s", resp)
	return nil
}

// SendPushToUser fans a notification out to all of a user's active devices
// and returns the number of successful deliveries. Tokens FCM reports as
// unregistered are deactivated; other failures bump the failure count.
func (s *FCMService) SendPushToUser(ctx context.Context, userID, title, body string, data map[string]string) int {
	devices, err := s.devicesForUser(ctx, userID)
	if err != nil {
		log.Printf("❌ Failed to load devices for user %s: %v", userID, err)
		return 0
	}

	sent := 0
	for _, device := range devices {
		if !device.IsActive {
			continue
		}
		err := s.SendPush(ctx, device.RegistrationID, title, body, data)
		if err == nil {
			sent++
			continue
		}

		log.Printf("❌ Push to device %s failed: %v", device.DeviceID, err)
		if messaging.IsRegistrationTokenNotRegistered(err) {
			s.deactivate(ctx, device)
		} else {
			s.bumpFailureCount(ctx, device)
		}
	}
	return sent
}

// BroadcastToStaff pushes a notification to every active device in the
// fleet. Used by scheduled sweeps, not request handlers.
func (s *FCMService) BroadcastToStaff(ctx context.Context, title, body string, data map[string]string) int {
	var devices []models.FCMDevice
	err := s.Dynamo.ScanWithFilter(ctx, models.FCMDevicesTable,
		func(item map[string]types.AttributeValue) bool {
			return utils.ExtractBool(item, "isActive")
		}, nil, &devices)
	if err != nil {
		log.Printf("❌ Failed to scan devices: %v", err)
		return 0
	}

	sent := 0
	for _, device := range devices {
		if err := s.SendPush(ctx, device.RegistrationID, title, body, data); err == nil {
			sent++
		}
	}
	return sent
}

// DeactivateFailingDevices flips devices past the failure threshold to
// inactive and returns how many were deactivated.
func (s *FCMService) DeactivateFailingDevices(ctx context.Context, maxFailures int) (int, error) {
	var devices []models.FCMDevice
	err := s.Dynamo.ScanWithFilter(ctx, models.FCMDevicesTable,
		func(item map[string]types.AttributeValue) bool {
			if !utils.ExtractBool(item, "isActive") {
				return false
			}
			count, _ := strconv.Atoi(utils.ExtractNumber(item, "failureCount"))
			return count > maxFailures
		}, nil, &devices)
	if err != nil {
		return 0, fmt.Errorf("failed to scan devices: %w", err)
	}

	for _, device := range devices {
		s.deactivate(ctx, device)
	}
	return len(devices), nil
}

func (s *FCMService) devicesForUser(ctx context.Context, userID string) ([]models.FCMDevice, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.FCMDevicesTable,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		}, nil, 25)
	if err != nil {
		return nil, err
	}

	var devices []models.FCMDevice
	if err := attributevalue.UnmarshalListOfMaps(items, &devices); err != nil {
		return nil, fmt.Errorf("failed to parse devices: %w", err)
	}
	return devices, nil
}

func (s *FCMService) deactivate(ctx context.Context, device models.FCMDevice) {
	log.Printf("⚠️ Deactivating FCM device %s (token %.20s...)", device.DeviceID, device.RegistrationID)
	_, err := s.Dynamo.UpdateItem(ctx, models.FCMDevicesTable,
		"SET isActive = :false",
		deviceKey(device.UserID, device.RegistrationID),
		map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		}, nil)
	if err != nil {
		log.Printf("❌ Failed to deactivate device %s: %v", device.DeviceID, err)
	}
}

func (s *FCMService) bumpFailureCount(ctx context.Context, device models.FCMDevice) {
	_, err := s.Dynamo.UpdateItem(ctx, models.FCMDevicesTable,
		"SET failureCount = failureCount + :one",
		deviceKey(device.UserID, device.RegistrationID),
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		}, nil)
	if err != nil {
		log.Printf("❌ Failed to bump failure count for device %s: %v", device.DeviceID, err)
	}
}

func deviceKey(userID, registrationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":         &types.AttributeValueMemberS{Value: userID},
		"registrationId": &types.AttributeValueMemberS{Value: registrationID},
	}
}
