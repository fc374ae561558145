package mailer

import (
	"fmt"
	"time"

	"github.com/gatherly/events-api/internal/domain/entity"
)

// TemplateRegistrationConfirmation is the template name carried by jobs
// enqueued after a successful event registration.
const TemplateRegistrationConfirmation = "registration_confirmation"

// NewRegistrationConfirmation builds the job enqueued after a user registers
// for an event. The worker renders it with RenderRegistrationConfirmation.
func NewRegistrationConfirmation(event *entity.Event, user *entity.User) EmailJob {
	return EmailJob{
		To:       user.Email,
		Template: TemplateRegistrationConfirmation,
		Data: map[string]string{
			"Username": user.Username,
			"Title":    event.Title,
			"Date":     event.Date.UTC().Format(time.RFC3339),
			"Location": event.Location,
		},
	}
}

// RenderRegistrationConfirmation renders the confirmation subject and text
// body from a job's Data.
func RenderRegistrationConfirmation(data map[string]string) (subject, text string) {
	subject = fmt.Sprintf("Registration Confirmation for %s", data["Title"])
	text = fmt.Sprintf(
		"Dear %s,\n\n"+
			"You have successfully registered for the event '%s'.\n"+
			"Details:\n"+
			"Date: %s\n"+
			"Location: %s\n\n"+
			"Thank you for registering!\n\n"+
			"Best regards,\n"+
			"Event Management Team",
		data["Username"], data["Title"], data["Date"], data["Location"],
	)
	return subject, text
}
