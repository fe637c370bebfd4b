package models

// FCMDevice is a registered push target. Partition key userId,
// sort key registrationId so re-registration upserts in place.
type FCMDevice struct {
	UserID         string `dynamodbav:"userId" json:"user_id"`
	RegistrationID string `dynamodbav:"registrationId" json:"registration_id"`
	DeviceID       string `dynamodbav:"deviceId" json:"device_id"`
	Platform       string `dynamodbav:"platform" json:"platform"`
	DeviceName     string `dynamodbav:"deviceName" json:"device_name"`
	AppVersion     string `dynamodbav:"appVersion" json:"app_version"`
	IsActive       bool   `dynamodbav:"isActive" json:"is_active"`
	FailureCount   int    `dynamodbav:"failureCount" json:"failure_count"`
	CreatedAt      string `dynamodbav:"createdAt" json:"created_at"`
}
