package models

// EmailPayload is a provider-agnostic outbound email message.
type EmailPayload struct {
	To       string
	Subject  string
	Body     string
	HTMLBody string
	Headers  map[string]string
}
