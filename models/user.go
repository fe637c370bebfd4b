package models

// StaffUser is a staff account that can log into the mobile app.
type StaffUser struct {
	ID           string   `dynamodbav:"id" json:"id"`
	Email        string   `dynamodbav:"email" json:"email"`
	PasswordHash string   `dynamodbav:"passwordHash" json:"-"`
	FirstName    string   `dynamodbav:"firstName" json:"first_name"`
	LastName     string   `dynamodbav:"lastName" json:"last_name"`
	IsStaff      bool     `dynamodbav:"isStaff" json:"-"`
	IsActive     bool     `dynamodbav:"isActive" json:"-"`
	IsSuperuser  bool     `dynamodbav:"isSuperuser" json:"-"`
	Permissions  []string `dynamodbav:"permissions" json:"-"`
}

// HasModulePermission reports whether the user holds "module.action".
// Superusers hold every permission.
func (u *StaffUser) HasModulePermission(module, action string) bool {
	if u.IsSuperuser {
		return true
	}
	want := module + "." + action
	for _, p := range u.Permissions {
		if p == want {
			return true
		}
	}
	return false
}

// AuthToken is a long-lived bearer token for a staff user, one per user.
// Keyed by the token itself; the userId GSI backs get-or-create.
type AuthToken struct {
	Key       string `dynamodbav:"token" json:"token"`
	UserID    string `dynamodbav:"userId" json:"user_id"`
	UserEmail string `dynamodbav:"userEmail" json:"-"`
	CreatedAt string `dynamodbav:"createdAt" json:"created_at"`
}
