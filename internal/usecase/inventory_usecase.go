package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"partstock/internal/domain/model"
	repo "partstock/internal/repository"
)

// 現在時刻の取得を差し替え可能にする
type Clock interface {
	Now() time.Time
}

// 一括操作のログを束ねるIDを採番する約束
type BatchIDGenerator interface {
	NewBatchID() string
}

// 編集可能なフィールド名
const (
	FieldName              = "name"
	FieldInventoryQuantity = "inventory_quantity"
	FieldQuantityPerCarton = "quantity_per_carton"
)

// 在庫変更の中核。入庫・出庫・フィールド編集・一括入出庫を扱う。
// どの変更も「部品の更新」と「操作ログ1件の追記」を同一トランザクションで確定させる。
type InventoryUsecase struct {
	tx       repo.TransactionManager
	clock    Clock
	batchIDs BatchIDGenerator
}

// DI
func NewInventoryUsecase(tx repo.TransactionManager, clock Clock, batchIDs BatchIDGenerator) *InventoryUsecase {
	return &InventoryUsecase{
		tx:       tx,
		clock:    clock,
		batchIDs: batchIDs,
	}
}

// 一括入出庫の1項目
type BatchQuantityInput struct {
	DrawingNumber string `json:"drawing_number"`
	Amount        int64  `json:"amount"`
}

// 一括操作の項目ごとの結果。1件の失敗は他の項目を止めない。
type BatchItemResult struct {
	DrawingNumber string `json:"drawing_number"`
	NewQuantity   int64  `json:"new_quantity,omitempty"`
	Error         string `json:"error,omitempty"`
}

// 入庫。amountは正の整数のみ。
func (u *InventoryUsecase) Receive(ctx context.Context, drawingNumber string, amount int64) (model.Part, error) {
	return u.applyQuantityChange(ctx, drawingNumber, amount, model.OperationIn, "")
}

// 出庫。在庫を超える数量は ErrInsufficientStock（在庫を負数にしない方針）。
func (u *InventoryUsecase) Issue(ctx context.Context, drawingNumber string, amount int64) (model.Part, error) {
	return u.applyQuantityChange(ctx, drawingNumber, amount, model.OperationOut, "")
}

// 一括入庫。項目ごとに独立して適用する。
func (u *InventoryUsecase) BatchReceive(ctx context.Context, items []BatchQuantityInput) []BatchItemResult {
	return u.applyBatch(ctx, items, model.OperationIn)
}

// 一括出庫
func (u *InventoryUsecase) BatchIssue(ctx context.Context, items []BatchQuantityInput) []BatchItemResult {
	return u.applyBatch(ctx, items, model.OperationOut)
}

// 1フィールドの編集。図番・物料番号・外部IDは不変。
// 数量系フィールドは数値でない・負数の入力を弾く。
func (u *InventoryUsecase) EditField(ctx context.Context, drawingNumber string, field string, value string) (model.Part, error) {
	field = strings.TrimSpace(field)

	switch field {
	case "drawing_number", "material_number", "external_id":
		return model.Part{}, ErrImmutableField
	case FieldName, FieldInventoryQuantity, FieldQuantityPerCarton:
	default:
		return model.Part{}, ErrUnknownField
	}

	var updated model.Part
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Parts().FindByDrawingNumber(ctx, drawingNumber)
		if err != nil {
			return err
		}

		//変更前の値（ログ用の文字列表現）
		var before string
		next := p

		switch field {
		case FieldName:
			v := strings.TrimSpace(value)
			if v == "" {
				return fmt.Errorf("%w: name required", ErrValidation)
			}
			before = p.Name
			next.Name = v
		case FieldInventoryQuantity:
			n, perr := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if perr != nil || n < 0 {
				return fmt.Errorf("%w: %s must be a non-negative integer", ErrValidation, field)
			}
			before = strconv.FormatInt(p.InventoryQuantity, 10)
			next.InventoryQuantity = n
		case FieldQuantityPerCarton:
			n, perr := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if perr != nil || n < 0 {
				return fmt.Errorf("%w: %s must be a non-negative integer", ErrValidation, field)
			}
			before = strconv.FormatInt(p.QuantityPerCarton, 10)
			next.QuantityPerCarton = n
		}

		now := u.clock.Now()
		next.LastUpdated = now

		if err := r.Parts().Update(ctx, next); err != nil {
			return err
		}

		after := renderFieldValue(next, field)
		entry := model.OperationLog{
			DrawingNumber: drawingNumber,
			RecordedAt:    now,
			OperationType: model.OperationEdit,
			Field:         field,
			ValueBefore:   before,
			ValueAfter:    after,
		}
		if err := r.OperationLogs().Create(ctx, entry); err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return model.Part{}, err
	}
	return updated, nil
}

// 数量変更の本体。更新とログ追記を1トランザクションで行う。
func (u *InventoryUsecase) applyQuantityChange(
	ctx context.Context,
	drawingNumber string,
	amount int64,
	op model.OperationType,
	batchID string,
) (model.Part, error) {
	if amount <= 0 {
		return model.Part{}, ErrInvalidQuantity
	}

	var updated model.Part
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Parts().FindByDrawingNumber(ctx, drawingNumber)
		if err != nil {
			return err
		}

		before := p.InventoryQuantity
		var after int64
		switch op {
		case model.OperationIn:
			after = before + amount
		case model.OperationOut:
			if amount > before {
				return ErrInsufficientStock
			}
			after = before - amount
		}

		if err := r.Parts().UpdateQuantity(ctx, drawingNumber, after); err != nil {
			return err
		}

		now := u.clock.Now()
		entry := model.OperationLog{
			DrawingNumber: drawingNumber,
			RecordedAt:    now,
			OperationType: op,
			Field:         FieldInventoryQuantity,
			ValueBefore:   strconv.FormatInt(before, 10),
			ValueAfter:    strconv.FormatInt(after, 10),
			BatchID:       batchID,
		}
		if err := r.OperationLogs().Create(ctx, entry); err != nil {
			return err
		}

		p.InventoryQuantity = after
		p.LastUpdated = now
		updated = p
		return nil
	})
	if err != nil {
		return model.Part{}, err
	}
	return updated, nil
}

// 一括入出庫。1件ずつ独立したトランザクションで適用し、失敗は結果に積む。
// 同じ呼び出しで書いたログはbatch_idで束ねる。
func (u *InventoryUsecase) applyBatch(ctx context.Context, items []BatchQuantityInput, op model.OperationType) []BatchItemResult {
	batchID := u.batchIDs.NewBatchID()

	results := make([]BatchItemResult, 0, len(items))
	for _, it := range items {
		p, err := u.applyQuantityChange(ctx, it.DrawingNumber, it.Amount, op, batchID)
		if err != nil {
			results = append(results, BatchItemResult{
				DrawingNumber: it.DrawingNumber,
				Error:         err.Error(),
			})
			continue
		}
		results = append(results, BatchItemResult{
			DrawingNumber: it.DrawingNumber,
			NewQuantity:   p.InventoryQuantity,
		})
	}
	return results
}

// ログ用の文字列表現
func renderFieldValue(p model.Part, field string) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldInventoryQuantity:
		return strconv.FormatInt(p.InventoryQuantity, 10)
	case FieldQuantityPerCarton:
		return strconv.FormatInt(p.QuantityPerCarton, 10)
	}
	return ""
}
