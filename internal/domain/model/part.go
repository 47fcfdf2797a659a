package model

import "time"

// 部品マスタ。図番（DrawingNumber）が主キー。
type Part struct {
	//物料番号。管理用の通し番号で、一意制約はない。
	MaterialNumber int64 `gorm:"not null;default:0" json:"material_number"`

	//図番。部品を一意に識別する。
	DrawingNumber string `gorm:"type:varchar(64);primaryKey" json:"drawing_number"`

	//品名
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//現在の在庫数量
	InventoryQuantity int64 `gorm:"not null;default:0" json:"inventory_quantity"`

	//1組・2組の累計。作成時は0で、以後この層では変更しない。
	GroupATotal int64 `gorm:"not null;default:0" json:"group_a_total"`
	GroupBTotal int64 `gorm:"not null;default:0" json:"group_b_total"`

	//1箱あたりの数量
	QuantityPerCarton int64 `gorm:"not null;default:0" json:"quantity_per_carton"`

	//最終更新日時。すべての変更操作で更新する。
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`

	//作成時に一度だけ採番する外部ID（[a-z0-9]{35}）。以後不変。
	ExternalID string `gorm:"type:char(35);not null" json:"external_id"`
}
