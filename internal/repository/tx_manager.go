package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Parts() PartRepository
	OperationLogs() OperationLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 部品の変更とログ追記を同一トランザクションで確定させるために使う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
