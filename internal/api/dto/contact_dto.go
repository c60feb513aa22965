package dto

// ContactEmailRequest is a contact-form submission.
type ContactEmailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactEmailResponse reports the delivery outcome.
type ContactEmailResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
