package usecase

import "errors"

// 業務ルール違反の種別。handlerがHTTPステータスへ変換する。
var (
	//入出庫数量が正の整数でない
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	//出庫数量が現在庫を超えている
	ErrInsufficientStock = errors.New("insufficient stock")

	//入力値が不正（必須欠落・数値でない・負数など）
	ErrValidation = errors.New("validation error")

	//図番・物料番号・外部IDは作成後に変更できない
	ErrImmutableField = errors.New("field is immutable")

	//編集対象として存在しないフィールド
	ErrUnknownField = errors.New("unknown field")
)
