package repository

import (
	"context"

	"partstock/internal/domain/model"
	repo "partstock/internal/repository"

	"gorm.io/gorm"
)

type operationLogGormRepository struct {
	db *gorm.DB
}

func NewOperationLogGormRepository(db *gorm.DB) repo.OperationLogRepository {
	return &operationLogGormRepository{db: db}
}

// ログを1件追記。Sequenceは自動採番。
func (r *operationLogGormRepository) Create(ctx context.Context, entry model.OperationLog) error {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return err
	}
	return nil
}

// 図番のログを取得。採番順に依存せず、明示的にSequence昇順で返す。
func (r *operationLogGormRepository) ListByDrawingNumber(ctx context.Context, drawingNumber string) ([]model.OperationLog, error) {
	var logs []model.OperationLog
	if err := r.db.WithContext(ctx).
		Where("drawing_number = ?", drawingNumber).
		Order("sequence asc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// 図番のログを全件削除
func (r *operationLogGormRepository) DeleteByDrawingNumber(ctx context.Context, drawingNumber string) error {
	if err := r.db.WithContext(ctx).
		Where("drawing_number = ?", drawingNumber).
		Delete(&model.OperationLog{}).Error; err != nil {
		return err
	}
	return nil
}
