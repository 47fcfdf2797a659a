package repository

import (
	"context"
	"errors"
	"time"

	"partstock/internal/domain/model"
)

// 対象の行が見つからない
var ErrNotFound = errors.New("not found")

// 図番が既に登録済み
var ErrDuplicateKey = errors.New("duplicate key")

// 検索条件。指定されたものだけをANDで適用する。
type PartSearchQuery struct {
	//図番の部分一致（大文字小文字を区別する）
	DrawingNumber string

	//品名の部分一致
	Name string

	//最終更新日時の範囲（両端を含む）
	From *time.Time
	To   *time.Time
}

// 部品マスタの永続化（保存・取得）だけを約束。
type PartRepository interface {
	//部品を新規作成。図番が重複していたら ErrDuplicateKey。
	Create(ctx context.Context, p model.Part) (model.Part, error)

	//図番で1件取得。なければ ErrNotFound。
	FindByDrawingNumber(ctx context.Context, drawingNumber string) (model.Part, error)

	//条件検索。条件なしなら全件を返す。
	Search(ctx context.Context, q PartSearchQuery) ([]model.Part, error)

	//在庫数量を現在値に設定し、last_updatedも更新する。対象なしは ErrNotFound。
	UpdateQuantity(ctx context.Context, drawingNumber string, newQuantity int64) error

	//可変フィールドをまとめて置き換える。図番・物料番号・外部IDは対象外。
	Update(ctx context.Context, p model.Part) error

	//図番で削除。対象なしは ErrNotFound。
	Delete(ctx context.Context, drawingNumber string) error

	//図番の集合で一括削除。削除した件数を返す。
	DeleteMany(ctx context.Context, drawingNumbers []string) (int64, error)

	//全件取得
	ListAll(ctx context.Context) ([]model.Part, error)
}
