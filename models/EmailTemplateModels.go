package models

// EmailTemplate is one of the built-in messages. Subject and Body may hold
// {{variable}} placeholders filled from EmailData.
type EmailTemplate struct {
	Name           string
	Subject        string
	Body           string
	IsHTML         bool
	AttachmentName string
}

// EmailData holds the values substituted into templates.
type EmailData struct {
	ClientName   string `json:"client_name"`
	ClientEmail  string `json:"client_email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	GrandTotal   string `json:"grand_total"`
	TableDetails string `json:"table_details"`
	CompanyName  string `json:"company_name"`
}

// Attachment is a file on disk sent under a display name.
type Attachment struct {
	Filename string
	Path     string
}

// OutgoingEmail is a fully rendered message ready for a Mailer.
type OutgoingEmail struct {
	From        string
	To          []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}
