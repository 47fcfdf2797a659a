package model

import "time"

// 入出庫・編集など、部品に対する操作の種類。
type OperationType string

const (
	//部品の新規登録
	OperationAdd OperationType = "add"

	//入庫（在庫数量の加算）
	OperationIn OperationType = "in"

	//出庫（在庫数量の減算）
	OperationOut OperationType = "out"

	//フィールド編集
	OperationEdit OperationType = "edit"

	//部品の削除
	OperationDelete OperationType = "delete"
)

// 操作ログ（部品ごとの監査証跡）。追記専用で、更新はしない。
// 「いつ」「どの部品に」「どの操作で」「どの値からどの値へ」を残す。
type OperationLog struct {
	//ストア側で採番する通し番号。主キーの一部。
	Sequence int64 `gorm:"primaryKey;autoIncrement" json:"sequence"`

	//対象部品の図番。主キーの一部。
	//部品削除後もログは残すため、外部キー制約は張らない。
	DrawingNumber string `gorm:"type:varchar(64);primaryKey;index" json:"drawing_number"`

	//操作時刻
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`

	//操作種別（add / in / out / edit / delete）
	OperationType OperationType `gorm:"type:varchar(10);not null" json:"operation_type"`

	//変更したフィールド名。入出庫では inventory_quantity。
	Field string `gorm:"type:varchar(32)" json:"field"`

	//変更前後の値（文字列表現）
	ValueBefore string `gorm:"type:varchar(64)" json:"value_before"`
	ValueAfter  string `gorm:"type:varchar(64)" json:"value_after"`

	//一括操作でまとめて書いたログを束ねるUUID。単発操作では空。
	BatchID string `gorm:"type:char(36)" json:"batch_id,omitempty"`
}
