package repository

import (
	"context"
	"errors"
	"fmt"

	"quotation-backend/models"
	"quotation-backend/utils"

	"gorm.io/gorm"
)

// QuotationRepository reads and writes the quotations table.
type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// CreateQuotation inserts q and fills in its generated id and created_at.
func (r *QuotationRepository) CreateQuotation(ctx context.Context, q *models.Quotation) error {
	ctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("failed to insert quotation: %w", err)
	}
	return nil
}

// ListQuotations returns every quotation, newest id first.
func (r *QuotationRepository) ListQuotations(ctx context.Context) ([]models.Quotation, error) {
	ctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	quotations := []models.Quotation{}
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&quotations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch quotations: %w", err)
	}
	return quotations, nil
}

func (r *QuotationRepository) GetQuotation(ctx context.Context, id int) (*models.Quotation, error) {
	ctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	var q models.Quotation
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quotation %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch quotation %d: %w", id, err)
	}
	return &q, nil
}
