package validator

import (
	"context"
	"fmt"
	"strings"

	"partstock/internal/usecase"
)

const (
	maxDrawingNumberLen = 64
	maxNameLen          = 255
)

type partValidator struct{}

// Usecaseは interface を依存注入
func NewPartValidator() usecase.PartValidator {
	return &partValidator{}
}

// 部品登録の入力を検証
func (v *partValidator) ValidateAdd(ctx context.Context, in usecase.AddPartInput) error {
	dn := strings.TrimSpace(in.DrawingNumber)
	name := strings.TrimSpace(in.Name)

	// 必須チェック
	if dn == "" {
		return fmt.Errorf("%w: drawing_number required", usecase.ErrValidation)
	}
	if name == "" {
		return fmt.Errorf("%w: name required", usecase.ErrValidation)
	}

	// 長さ
	if len(dn) > maxDrawingNumberLen {
		return fmt.Errorf("%w: drawing_number too long", usecase.ErrValidation)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: name too long", usecase.ErrValidation)
	}

	// 数量は0以上
	if in.InventoryQuantity < 0 {
		return fmt.Errorf("%w: inventory_quantity must be >= 0", usecase.ErrValidation)
	}
	if in.QuantityPerCarton < 0 {
		return fmt.Errorf("%w: quantity_per_carton must be >= 0", usecase.ErrValidation)
	}
	if in.MaterialNumber < 0 {
		return fmt.Errorf("%w: material_number must be >= 0", usecase.ErrValidation)
	}

	return nil
}

// 検索の入力を検証
func (v *partValidator) ValidateSearch(ctx context.Context, in usecase.SearchPartsInput) error {
	//範囲の向きだけ確認する（両端を含む範囲）
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return fmt.Errorf("%w: from must be <= to", usecase.ErrValidation)
	}
	return nil
}
