package errs

import "errors"

var (
	// ErrRateLimited indicates the email provider rejected the request because
	// the caller exceeded its allowed request rate. Transient; safe to retry.
	ErrRateLimited = errors.New("rate limited by email provider")
	// ErrEmptyRecipients indicates a dispatch request with no recipients.
	ErrEmptyRecipients = errors.New("recipients list is required and cannot be empty")
	// ErrMissingSubject indicates a dispatch request without a subject line.
	ErrMissingSubject = errors.New("subject is required")
	// ErrSearchNotFound indicates that a search record was not found.
	ErrSearchNotFound = errors.New("search not found")
	// ErrAssistantUnavailable indicates the chat completion capability could
	// not produce a reply and the canned fallback should be used.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)
