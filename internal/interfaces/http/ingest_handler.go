package http

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
)

// IngestHandler maneja la ingesta de reportes de Amazon (protegido).
type IngestHandler struct {
	uc *recovery.IngestUseCase
}

// NewIngestHandler construye el handler de ingesta.
func NewIngestHandler(uc *recovery.IngestUseCase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// IngestLedger godoc
// @Summary      Ingestar reporte ledger
// @Description  Acepta JSON {rows: [...]} o el TSV crudo del reporte
//
//	(Content-Type text/tab-separated-values, Windows-1252).
//
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.IngestResponse
// @Router       /api/reports/ledger [post]
func (h *IngestHandler) IngestLedger(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}

	// El reporte puede venir tal cual lo descarga el seller.
	if strings.Contains(c.Get(fiber.HeaderContentType), "tab-separated-values") {
		resp, err := h.uc.IngestLedgerTSV(c.Context(), scope, bytes.NewReader(c.Body()))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REPORT", Message: err.Error()})
		}
		return c.JSON(resp)
	}

	var in dto.IngestLedgerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.IngestLedger(c.Context(), scope, in)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// IngestFees godoc
// @Summary      Ingestar snapshot de precios y fees
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.IngestResponse
// @Router       /api/reports/fees [post]
func (h *IngestHandler) IngestFees(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	var in dto.IngestFeesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.IngestFees(c.Context(), scope, in)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// IngestShipments godoc
// @Summary      Ingestar envíos entrantes
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.IngestResponse
// @Router       /api/reports/shipments [post]
func (h *IngestHandler) IngestShipments(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	var in dto.IngestShipmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.IngestShipments(c.Context(), scope, in)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// IngestReimbursements godoc
// @Summary      Ingestar reporte de reembolsos aprobados
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.IngestResponse
// @Failure      409  {object}  dto.ErrorResponse  "SCOPE_LOCKED"
// @Router       /api/reports/reimbursements [post]
func (h *IngestHandler) IngestReimbursements(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	var in dto.IngestReimbursementsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.IngestReimbursements(c.Context(), scope, in)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// ReplaceProducts godoc
// @Summary      Reemplazar catálogo de productos del scope
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.IngestResponse
// @Router       /api/products [put]
func (h *IngestHandler) ReplaceProducts(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	var in dto.ReplaceProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ReplaceProducts(c.Context(), scope, in)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}
