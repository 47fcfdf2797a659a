package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"partstock/internal/domain/model"
	repo "partstock/internal/repository"
)

// 部品の外部IDを採番する約束（[a-z0-9]{35}）
type ExternalIDGenerator interface {
	NewExternalID() string
}

// 部品登録・検索の入力検証を差し替え可能にする
type PartValidator interface {
	ValidateAdd(ctx context.Context, in AddPartInput) error
	ValidateSearch(ctx context.Context, in SearchPartsInput) error
}

// 部品の登録・削除・検索・ログ照会。
type PartUsecase struct {
	partRepo    repo.PartRepository
	logRepo     repo.OperationLogRepository
	tx          repo.TransactionManager
	validator   PartValidator
	clock       Clock
	externalIDs ExternalIDGenerator
	batchIDs    BatchIDGenerator
}

// DI
func NewPartUsecase(
	partRepo repo.PartRepository,
	logRepo repo.OperationLogRepository,
	tx repo.TransactionManager,
	validator PartValidator,
	clock Clock,
	externalIDs ExternalIDGenerator,
	batchIDs BatchIDGenerator,
) *PartUsecase {
	return &PartUsecase{
		partRepo:    partRepo,
		logRepo:     logRepo,
		tx:          tx,
		validator:   validator,
		clock:       clock,
		externalIDs: externalIDs,
		batchIDs:    batchIDs,
	}
}

// 部品登録の入力
type AddPartInput struct {
	MaterialNumber    int64
	DrawingNumber     string
	Name              string
	InventoryQuantity int64
	QuantityPerCarton int64
}

// 検索の入力。指定された条件だけを適用する。
type SearchPartsInput struct {
	DrawingNumber string
	Name          string
	From          *time.Time
	To            *time.Time
}

// 部品を登録し、addログを同一トランザクションで残す。
// 1組・2組の累計は0始まり。外部IDはここで一度だけ採番する。
func (u *PartUsecase) AddPart(ctx context.Context, in AddPartInput) (model.Part, error) {
	if err := u.validator.ValidateAdd(ctx, in); err != nil {
		return model.Part{}, err
	}

	now := u.clock.Now()
	p := model.Part{
		MaterialNumber:    in.MaterialNumber,
		DrawingNumber:     strings.TrimSpace(in.DrawingNumber),
		Name:              strings.TrimSpace(in.Name),
		InventoryQuantity: in.InventoryQuantity,
		GroupATotal:       0,
		GroupBTotal:       0,
		QuantityPerCarton: in.QuantityPerCarton,
		LastUpdated:       now,
		ExternalID:        u.externalIDs.NewExternalID(),
	}

	var created model.Part
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Parts().Create(ctx, p)
		if err != nil {
			return err
		}

		entry := model.OperationLog{
			DrawingNumber: c.DrawingNumber,
			RecordedAt:    now,
			OperationType: model.OperationAdd,
			Field:         FieldInventoryQuantity,
			ValueBefore:   "",
			ValueAfter:    strconv.FormatInt(c.InventoryQuantity, 10),
		}
		if err := r.OperationLogs().Create(ctx, entry); err != nil {
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		return model.Part{}, err
	}
	return created, nil
}

// 部品を削除する。deleteログを先に残してから行を消す。
// ログは部品より長生きする（監査のため、ログの削除は明示操作のみ）。
func (u *PartUsecase) DeletePart(ctx context.Context, drawingNumber string) error {
	return u.deleteOne(ctx, drawingNumber, "")
}

// 一括削除。1件ずつ独立に適用し、失敗した図番は結果に積む。
func (u *PartUsecase) BatchDelete(ctx context.Context, drawingNumbers []string) []BatchItemResult {
	batchID := u.batchIDs.NewBatchID()

	results := make([]BatchItemResult, 0, len(drawingNumbers))
	for _, dn := range drawingNumbers {
		if err := u.deleteOne(ctx, dn, batchID); err != nil {
			results = append(results, BatchItemResult{DrawingNumber: dn, Error: err.Error()})
			continue
		}
		results = append(results, BatchItemResult{DrawingNumber: dn})
	}
	return results
}

func (u *PartUsecase) deleteOne(ctx context.Context, drawingNumber string, batchID string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Parts().FindByDrawingNumber(ctx, drawingNumber)
		if err != nil {
			return err
		}

		entry := model.OperationLog{
			DrawingNumber: p.DrawingNumber,
			RecordedAt:    u.clock.Now(),
			OperationType: model.OperationDelete,
			Field:         FieldInventoryQuantity,
			ValueBefore:   strconv.FormatInt(p.InventoryQuantity, 10),
			ValueAfter:    "",
			BatchID:       batchID,
		}
		if err := r.OperationLogs().Create(ctx, entry); err != nil {
			return err
		}

		return r.Parts().Delete(ctx, p.DrawingNumber)
	})
}

// 条件検索。条件がひとつもなければ全件。
func (u *PartUsecase) Search(ctx context.Context, in SearchPartsInput) ([]model.Part, error) {
	if err := u.validator.ValidateSearch(ctx, in); err != nil {
		return nil, err
	}

	if in.DrawingNumber == "" && in.Name == "" && in.From == nil && in.To == nil {
		return u.partRepo.ListAll(ctx)
	}

	return u.partRepo.Search(ctx, repo.PartSearchQuery{
		DrawingNumber: in.DrawingNumber,
		Name:          in.Name,
		From:          in.From,
		To:            in.To,
	})
}

// 図番で1件取得
func (u *PartUsecase) GetPart(ctx context.Context, drawingNumber string) (model.Part, error) {
	return u.partRepo.FindByDrawingNumber(ctx, drawingNumber)
}

// 図番の操作ログをSequence昇順で返す。
// 部品が削除済みでもログは照会できる。
func (u *PartUsecase) GetLogs(ctx context.Context, drawingNumber string) ([]model.OperationLog, error) {
	return u.logRepo.ListByDrawingNumber(ctx, drawingNumber)
}

// 図番の操作ログを破棄する（部品の削除とは独立した明示操作）。
func (u *PartUsecase) PurgeLogs(ctx context.Context, drawingNumber string) error {
	return u.logRepo.DeleteByDrawingNumber(ctx, drawingNumber)
}
