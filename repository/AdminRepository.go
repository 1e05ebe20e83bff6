package repository

import (
	"context"
	"errors"
	"fmt"

	"quotation-backend/models"
	"quotation-backend/utils"

	"gorm.io/gorm"
)

// AdminRepository reads the quotationadmin table. Admin rows are managed
// outside this service.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindAdminByUsername returns models.ErrNotFound when no admin has that username.
func (r *AdminRepository) FindAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	ctx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	ctx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	admins := []models.AdminUser{}
	if err := r.db.WithContext(ctx).Order("id").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch admins: %w", err)
	}
	return admins, nil
}
