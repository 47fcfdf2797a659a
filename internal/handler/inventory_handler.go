package handler

import (
	"net/http"

	"partstock/internal/config"
	"partstock/internal/middleware"
	"partstock/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PartCreateRequest は部品登録の入力です。
type PartCreateRequest struct {
	MaterialNumber    int64  `json:"material_number"`
	DrawingNumber     string `json:"drawing_number"`
	Name              string `json:"name"`
	InventoryQuantity int64  `json:"inventory_quantity"`
	QuantityPerCarton int64  `json:"quantity_per_carton"`
}

// QuantityRequest は入庫・出庫の入力です。
type QuantityRequest struct {
	Amount int64 `json:"amount"`
}

// FieldEditRequest は1フィールド編集の入力です。
type FieldEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// BatchQuantityRequest は一括入出庫の入力です。
type BatchQuantityRequest struct {
	Items []usecase.BatchQuantityInput `json:"items"`
}

// BatchDeleteRequest は一括削除の入力です。
type BatchDeleteRequest struct {
	DrawingNumbers []string `json:"drawing_numbers"`
}

// BatchResponse は一括操作の項目ごとの結果です。
type BatchResponse struct {
	Items []usecase.BatchItemResult `json:"items"`
}

// 在庫を変える操作をまとめる（要認証）
type InventoryHandler struct {
	invUC  *usecase.InventoryUsecase
	partUC *usecase.PartUsecase
}

// DI
func NewInventoryHandler(invUC *usecase.InventoryUsecase, partUC *usecase.PartUsecase) *InventoryHandler {
	return &InventoryHandler{invUC: invUC, partUC: partUC}
}

// 変更系ルートを登録。すべてBearer認証の配下に置く。
func (h *InventoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/parts", h.createPart)
	g.PUT("/parts/:drawing_number", h.editField)
	g.DELETE("/parts/:drawing_number", h.deletePart)
	g.DELETE("/parts/:drawing_number/logs", h.purgeLogs)

	g.POST("/parts/:drawing_number/receive", h.receive)
	g.POST("/parts/:drawing_number/issue", h.issue)

	g.POST("/parts/batch/receive", h.batchReceive)
	g.POST("/parts/batch/issue", h.batchIssue)
	g.POST("/parts/batch/delete", h.batchDelete)
}

func (h *InventoryHandler) createPart(c echo.Context) error {
	var req PartCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.partUC.AddPart(c.Request().Context(), usecase.AddPartInput{
		MaterialNumber:    req.MaterialNumber,
		DrawingNumber:     req.DrawingNumber,
		Name:              req.Name,
		InventoryQuantity: req.InventoryQuantity,
		QuantityPerCarton: req.QuantityPerCarton,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *InventoryHandler) editField(c echo.Context) error {
	dn := c.Param("drawing_number")

	var req FieldEditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.invUC.EditField(c.Request().Context(), dn, req.Field, req.Value)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *InventoryHandler) deletePart(c echo.Context) error {
	dn := c.Param("drawing_number")

	if err := h.partUC.DeletePart(c.Request().Context(), dn); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *InventoryHandler) purgeLogs(c echo.Context) error {
	dn := c.Param("drawing_number")

	if err := h.partUC.PurgeLogs(c.Request().Context(), dn); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "logs purged"})
}

func (h *InventoryHandler) receive(c echo.Context) error {
	dn := c.Param("drawing_number")

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.invUC.Receive(c.Request().Context(), dn, req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *InventoryHandler) issue(c echo.Context) error {
	dn := c.Param("drawing_number")

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.invUC.Issue(c.Request().Context(), dn, req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *InventoryHandler) batchReceive(c echo.Context) error {
	var req BatchQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	results := h.invUC.BatchReceive(c.Request().Context(), req.Items)
	return c.JSON(http.StatusOK, BatchResponse{Items: results})
}

func (h *InventoryHandler) batchIssue(c echo.Context) error {
	var req BatchQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	results := h.invUC.BatchIssue(c.Request().Context(), req.Items)
	return c.JSON(http.StatusOK, BatchResponse{Items: results})
}

func (h *InventoryHandler) batchDelete(c echo.Context) error {
	var req BatchDeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	results := h.partUC.BatchDelete(c.Request().Context(), req.DrawingNumbers)
	return c.JSON(http.StatusOK, BatchResponse{Items: results})
}
