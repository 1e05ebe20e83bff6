package models

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrMissingFields      = errors.New("missing name, email, phone, or PDF file")
	ErrNotPDF             = errors.New("only PDF files allowed")
	ErrFileTooLarge       = errors.New("PDF file too large")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDatabase           = errors.New("database error")
)
