package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the job published after a successful signup.
func WelcomeEmail(name, email string) EmailJob {
	return EmailJob{
		To:      email,
		Subject: "Welcome to vidstream",
		Text:    "Hi " + name + ",\n\nYour account is ready. Sign in and upload your first video.\n",
	}
}
