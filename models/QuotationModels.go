package models

import (
	"time"
)

// Quotation is one submitted quote request. Rows are written once and never updated.
type Quotation struct {
	ID           int       `json:"id" gorm:"column:id;primaryKey;autoIncrement" example:"42"`
	Name         string    `json:"name" gorm:"column:name;not null" example:"Asha Verma"`
	Email        string    `json:"email" gorm:"column:email;not null" example:"asha@example.com"`
	Phone        string    `json:"phone" gorm:"column:phone;not null" example:"+91 98765 43210"`
	Message      string    `json:"message" gorm:"column:message;not null;default:''"`
	TableDetails string    `json:"table_details" gorm:"column:table_details;not null;default:''" example:"Basic: Logo, Banner"`
	GrandTotal   Money     `json:"grand_total" gorm:"column:grand_total;type:numeric(12,2);not null;default:0" swaggertype:"string" example:"123.50"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime" example:"2024-01-15T10:30:00Z"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// AdminUser is a row of the quotationadmin table.
type AdminUser struct {
	ID       int    `json:"id" gorm:"column:id;primaryKey;autoIncrement" example:"1"`
	Username string `json:"username" gorm:"column:username;not null" example:"admin"`
	Password string `json:"password" gorm:"column:password;not null"`
}

func (AdminUser) TableName() string {
	return "quotationadmin"
}

// Submission carries the raw form fields of POST /send-email.
type Submission struct {
	Name         string
	Email        string
	Phone        string
	Message      string
	TableDetails string
	GrandTotal   string
}

// HasRequiredFields reports whether name, email and phone are all present.
func (s Submission) HasRequiredFields() bool {
	return s.Name != "" && s.Email != "" && s.Phone != ""
}

// SubmissionOutcome records what each step of a submission actually did.
// A quotation can be mailed without being persisted; PersistError keeps that visible.
type SubmissionOutcome struct {
	QuotationID    int
	Persisted      bool
	PersistError   error
	AdminNotified  bool
	ClientNotified bool
	CleanedUp      bool
}

// Inconsistent is true when the emails went out but the row was not written.
func (o SubmissionOutcome) Inconsistent() bool {
	return !o.Persisted && (o.AdminNotified || o.ClientNotified)
}
