package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"quotation-backend/models"
)

// QuotationStore persists quotations.
type QuotationStore interface {
	CreateQuotation(ctx context.Context, q *models.Quotation) error
	ListQuotations(ctx context.Context) ([]models.Quotation, error)
	GetQuotation(ctx context.Context, id int) (*models.Quotation, error)
}

// QuotationService runs a submission: validate, save the upload, persist,
// notify, clean up.
type QuotationService struct {
	store   QuotationStore
	uploads *UploadService
	emails  *EmailService
}

func NewQuotationService(store QuotationStore, uploads *UploadService, emails *EmailService) *QuotationService {
	return &QuotationService{store: store, uploads: uploads, emails: emails}
}

// Submit handles one quotation request. A failed insert does not stop the
// emails; it is returned in the outcome instead. An email failure is returned
// as the error. The uploaded file is removed on every path once it was saved.
func (s *QuotationService) Submit(ctx context.Context, sub models.Submission, fh *multipart.FileHeader) (outcome models.SubmissionOutcome, err error) {
	if !sub.HasRequiredFields() || fh == nil {
		return outcome, models.ErrMissingFields
	}

	upload, err := s.uploads.Save(fh)
	if err != nil {
		return outcome, err
	}
	defer func() {
		if rmErr := upload.Remove(); rmErr != nil {
			log.Printf("failed to remove upload %s: %v", upload.Path, rmErr)
			return
		}
		outcome.CleanedUp = true
	}()

	tableDetails := FormatTableDetails(sub.TableDetails)
	total := models.ParseMoney(sub.GrandTotal)

	quotation := &models.Quotation{
		Name:         sub.Name,
		Email:        sub.Email,
		Phone:        sub.Phone,
		Message:      sub.Message,
		TableDetails: tableDetails,
		GrandTotal:   total,
	}
	if persistErr := s.store.CreateQuotation(ctx, quotation); persistErr != nil {
		log.Printf("DB insert error for %s: %v", sub.Email, persistErr)
		outcome.PersistError = persistErr
	} else {
		outcome.Persisted = true
		outcome.QuotationID = quotation.ID
		log.Printf("quotation %d saved successfully", quotation.ID)
	}

	data := models.EmailData{
		ClientName:   sub.Name,
		ClientEmail:  sub.Email,
		Phone:        sub.Phone,
		Message:      sub.Message,
		GrandTotal:   total.String(),
		TableDetails: tableDetails,
	}

	if err := s.emails.SendInternalNotification(ctx, data, upload.Path); err != nil {
		return outcome, err
	}
	outcome.AdminNotified = true

	if err := s.emails.SendClientConfirmation(ctx, data, upload.Path); err != nil {
		return outcome, err
	}
	outcome.ClientNotified = true

	if outcome.Inconsistent() {
		log.Printf("inconsistency: emails sent for %s but quotation not saved: %v", sub.Email, outcome.PersistError)
	}
	return outcome, nil
}

func (s *QuotationService) List(ctx context.Context) ([]models.Quotation, error) {
	return s.store.ListQuotations(ctx)
}

func (s *QuotationService) Get(ctx context.Context, id int) (*models.Quotation, error) {
	q, err := s.store.GetQuotation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}
