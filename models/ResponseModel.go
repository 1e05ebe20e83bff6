package models

// MessageResponse is the body of most replies: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message" example:"✅ Email sent & quotation saved!"`
}

// ErrorResponse adds the underlying error text for upstream failures.
type ErrorResponse struct {
	Message string `json:"message" example:"Failed to send email"`
	Error   string `json:"error,omitempty" example:"dial tcp: i/o timeout"`
}

// SubmitResponse is returned by POST /send-email on success. Warning is set
// when the emails were delivered but the quotation row could not be saved.
type SubmitResponse struct {
	Message     string `json:"message" example:"✅ Email sent & quotation saved!"`
	QuotationID int    `json:"quotation_id,omitempty" example:"42"`
	Warning     string `json:"warning,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"changeme"`
}

type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
