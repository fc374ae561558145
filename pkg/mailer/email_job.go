package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Subject/Text are set directly, or Template names a known template
// and Data carries its fields.
type EmailJob struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject,omitempty"`
	Text     string            `json:"text,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Template string            `json:"template,omitempty"` // e.g. "registration_confirmation"
	Data     map[string]string `json:"data,omitempty"`
}
