package repository

import (
	"context"

	"partstock/internal/domain/model"
)

// 操作ログの保存・一覧取得の約束。ログは追記専用。
type OperationLogRepository interface {
	//ログを1件追記。Sequenceはストア側で採番する。
	Create(ctx context.Context, entry model.OperationLog) error

	//図番のログをSequence昇順で全件取得。
	ListByDrawingNumber(ctx context.Context, drawingNumber string) ([]model.OperationLog, error)

	//図番のログを全件削除。部品削除とは独立した明示操作。
	DeleteByDrawingNumber(ctx context.Context, drawingNumber string) error
}
