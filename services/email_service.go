package services

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/nestorwheelock/buceo-feliz/models"
)

// EmailService sends lead-notification email over SMTP. When no host is
// configured the service logs and drops mail instead of erroring.
type EmailService struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

// SendLeadNotification emails the shop inbox about an outbound staff reply.
func (s *EmailService) SendLeadNotification(person *models.Person, messageText string, staff *models.StaffUser) error {
	if s == nil || s.Host == "" {
		log.Println("📧 SMTP not configured, skipping lead notification email")
		return nil
	}

	staffName := fmt.Sprintf("%s %s", staff.FirstName, staff.LastName)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("Chat reply sent to %s", person.DisplayName()))
	m.SetBody("text/plain", fmt.Sprintf(
		"%s replied to %s <%s>:\n\n%s\n", staffName, person.DisplayName(), person.Email, messageText))

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead notification: %w", err)
	}

	log.Printf("📧 Lead notification sent for %s", person.DisplayName())
	return nil
}
