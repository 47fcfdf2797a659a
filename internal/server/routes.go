package server

import (
	"partstock/internal/config"
	"partstock/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	partH *handler.PartHandler,
	invH *handler.InventoryHandler,
) {
	authH.RegisterRoutes(e)

	//照会は公開、変更は要認証
	partH.RegisterRoutes(e)
	invH.RegisterRoutes(e, cfg)
}
