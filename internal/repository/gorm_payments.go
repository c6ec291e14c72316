package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/utils"
)

type gormPayments struct {
	db *gorm.DB
}

func (r *gormPayments) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	return translate(r.db.WithContext(ctx).Create(tx).Error)
}

func (r *gormPayments) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

func (r *gormPayments) FindBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&tx).Error; err != nil {
		return nil, translate(err)
	}
	return &tx, nil
}

func (r *gormPayments) Update(ctx context.Context, tx *models.PaymentTransaction) error {
	res := r.db.WithContext(ctx).Model(tx).Select("*").Omit("id", "created_at").Updates(tx)
	return rowsOrNotFound(res)
}

func (r *gormPayments) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Order("id").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *gormPayments) List(ctx context.Context, pg utils.Pagination) ([]models.PaymentTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentTransaction{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.PaymentTransaction
	if err := query.Order("created_at desc").Order("id").
		Limit(pg.Size).Offset(pg.Offset).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
