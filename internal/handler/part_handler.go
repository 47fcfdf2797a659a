package handler

import (
	"errors"
	"net/http"
	"time"

	repo "partstock/internal/repository"
	"partstock/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse は Success { message: string } の形。
type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseのエラー種別をHTTPステータスへ変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repo.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, repo.ErrDuplicateKey):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "drawing number already exists"})
	case errors.Is(err, usecase.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrImmutableField),
		errors.Is(err, usecase.ErrUnknownField):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /parts の公開API（照会のみ）
type PartHandler struct {
	uc *usecase.PartUsecase
}

// DI
func NewPartHandler(uc *usecase.PartUsecase) *PartHandler {
	return &PartHandler{uc: uc}
}

// 照会ルートを登録
func (h *PartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/parts", h.search)
	e.GET("/parts/:drawing_number", h.detail)
	e.GET("/parts/:drawing_number/logs", h.logs)
}

// 日付は YYYY-MM-DD で受ける
const dateLayout = "2006-01-02"

func (h *PartHandler) search(c echo.Context) error {
	in := usecase.SearchPartsInput{
		DrawingNumber: c.QueryParam("drawing_number"),
		Name:          c.QueryParam("name"),
	}

	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		in.From = &t
	}

	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		//その日の終わりまで含める（両端を含む範囲）
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		in.To = &end
	}

	parts, err := h.uc.Search(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, parts)
}

func (h *PartHandler) detail(c echo.Context) error {
	dn := c.Param("drawing_number")

	p, err := h.uc.GetPart(c.Request().Context(), dn)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *PartHandler) logs(c echo.Context) error {
	dn := c.Param("drawing_number")

	entries, err := h.uc.GetLogs(c.Request().Context(), dn)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, entries)
}
