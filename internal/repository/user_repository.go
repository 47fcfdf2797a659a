package repository

import (
	"context"
	"errors"

	"partstock/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// オペレーターアカウントの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error

	//メールからユーザーを1件取得する。なければ ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	//ユーザー情報の更新=>最後のログイン更新など
	Update(ctx context.Context, user *model.User) error
}
