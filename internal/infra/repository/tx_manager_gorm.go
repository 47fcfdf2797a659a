package repository

import (
	"context"

	repo "partstock/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	parts repo.PartRepository
	logs  repo.OperationLogRepository
}

func (r *txReposGorm) Parts() repo.PartRepository                 { return r.parts }
func (r *txReposGorm) OperationLogs() repo.OperationLogRepository { return r.logs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			parts: NewPartGormRepository(tx),
			logs:  NewOperationLogGormRepository(tx),
		}
		return fn(r)
	})
}
