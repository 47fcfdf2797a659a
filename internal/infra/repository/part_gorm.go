package repository

import (
	"context"
	"errors"
	"time"

	"partstock/internal/domain/model"
	repo "partstock/internal/repository"

	"gorm.io/gorm"
)

type PartGormRepository struct {
	db *gorm.DB
}

// DI
func NewPartGormRepository(db *gorm.DB) *PartGormRepository {
	return &PartGormRepository{db: db}
}

// 部品の新規作成。図番の重複は ErrDuplicateKey に変換する。
func (r *PartGormRepository) Create(ctx context.Context, p model.Part) (model.Part, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.Part{}, repo.ErrDuplicateKey
		}
		return model.Part{}, err
	}
	return p, nil
}

// 図番で部品を取得
func (r *PartGormRepository) FindByDrawingNumber(ctx context.Context, drawingNumber string) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).
		Where("drawing_number = ?", drawingNumber).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

// 条件検索。指定された条件だけをANDで重ねる。条件なしなら全件。
func (r *PartGormRepository) Search(ctx context.Context, q repo.PartSearchQuery) ([]model.Part, error) {
	tx := r.db.WithContext(ctx).Model(&model.Part{})

	// 部分一致は大文字小文字を区別する（LIKE）
	if q.DrawingNumber != "" {
		tx = tx.Where("drawing_number LIKE ?", "%"+q.DrawingNumber+"%")
	}
	if q.Name != "" {
		tx = tx.Where("name LIKE ?", "%"+q.Name+"%")
	}

	//更新日時の範囲は両端を含む
	if q.From != nil {
		tx = tx.Where("last_updated >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("last_updated <= ?", *q.To)
	}

	var parts []model.Part
	if err := tx.Order("drawing_number asc").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

// 在庫数量を現在値に設定し、last_updatedも更新する
func (r *PartGormRepository) UpdateQuantity(ctx context.Context, drawingNumber string, newQuantity int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Part{}).
		Where("drawing_number = ?", drawingNumber).
		Updates(map[string]interface{}{
			"inventory_quantity": newQuantity,
			"last_updated":       time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 可変フィールドの置き換え。図番・物料番号・外部IDは変更しない。
func (r *PartGormRepository) Update(ctx context.Context, p model.Part) error {
	res := r.db.WithContext(ctx).
		Model(&model.Part{}).
		Where("drawing_number = ?", p.DrawingNumber).
		Updates(map[string]interface{}{
			"name":                p.Name,
			"inventory_quantity":  p.InventoryQuantity,
			"quantity_per_carton": p.QuantityPerCarton,
			"last_updated":        p.LastUpdated,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 図番で削除
func (r *PartGormRepository) Delete(ctx context.Context, drawingNumber string) error {
	res := r.db.WithContext(ctx).
		Where("drawing_number = ?", drawingNumber).
		Delete(&model.Part{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 図番の集合で一括削除。見つからなかった図番は黙って飛ばす。
func (r *PartGormRepository) DeleteMany(ctx context.Context, drawingNumbers []string) (int64, error) {
	if len(drawingNumbers) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Where("drawing_number IN ?", drawingNumbers).
		Delete(&model.Part{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 全件取得
func (r *PartGormRepository) ListAll(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	if err := r.db.WithContext(ctx).
		Order("drawing_number asc").
		Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}
