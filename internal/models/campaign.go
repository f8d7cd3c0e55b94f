package models

// Recipient is one addressable target of a follow-up campaign. Only Email is
// required for delivery; the rest is personalization. A recipient with an
// empty email is counted as a failure without a provider call.
type Recipient struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	TrademarkName string `json:"trademarkName,omitempty"`
}

// SendOutcome is the per-recipient result of a dispatch attempt. Outcomes are
// appended in recipient order, so outcome[i] corresponds to recipient[i].
type SendOutcome struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	EmailID string `json:"emailId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DispatchReport aggregates the outcome of one campaign dispatch.
type DispatchReport struct {
	SuccessCount    int           `json:"successCount"`
	FailureCount    int           `json:"failureCount"`
	TotalRecipients int           `json:"totalRecipients"`
	Results         []SendOutcome `json:"results"`
}
