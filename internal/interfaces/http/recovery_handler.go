package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reembolsos-api/internal/application/dto"
	"github.com/jhoicas/Reembolsos-api/internal/application/recovery"
	"github.com/jhoicas/Reembolsos-api/internal/domain"
)

// RecoveryHandler maneja las operaciones del motor de recuperación (protegido).
type RecoveryHandler struct {
	reconcile *recovery.ReconcileUseCase
	detect    *recovery.DetectShipmentsUseCase
	query     *recovery.ClaimQueryUseCase
}

// NewRecoveryHandler construye el handler.
func NewRecoveryHandler(
	reconcile *recovery.ReconcileUseCase,
	detect *recovery.DetectShipmentsUseCase,
	query *recovery.ClaimQueryUseCase,
) *RecoveryHandler {
	return &RecoveryHandler{reconcile: reconcile, detect: detect, query: query}
}

// recoveryError mapea los errores del motor a respuestas HTTP. El orden
// importa: los typed errors primero, los sentinels después.
func recoveryError(c *fiber.Ctx, err error) error {
	var missing *domain.MissingPreconditionError
	if errors.As(err, &missing) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "MISSING_REPORT",
			Message: "falta ingestar el reporte requerido: " + missing.Artifact,
		})
	}
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "country y region son requeridos"})
	case domain.ErrScopeLocked:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SCOPE_LOCKED", Message: "otra corrida está en curso para este scope"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Reconcile godoc
// @Summary      Reconciliar inventario perdido del scope
// @Tags         recovery
// @Security     Bearer
// @Produce      json
// @Param        country  query  string  true  "País del marketplace (US, MX, ...)"
// @Param        region   query  string  true  "Región (na, eu, fe)"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      409  {object}  dto.ErrorResponse  "MISSING_REPORT o SCOPE_LOCKED"
// @Router       /api/recovery/reconcile [post]
func (h *RecoveryHandler) Reconcile(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	resp, err := h.reconcile.Reconcile(c.Context(), scope)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// ListLostInventory godoc
// @Summary      Resultado de la última reconciliación
// @Tags         recovery
// @Security     Bearer
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/recovery/lost-inventory [get]
func (h *RecoveryHandler) ListLostInventory(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	resp, err := h.reconcile.ListLost(c.Context(), scope)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// DetectShipments godoc
// @Summary      Detectar faltantes de envíos entrantes
// @Tags         recovery
// @Security     Bearer
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  dto.DetectShipmentsResponse
// @Failure      409  {object}  dto.ErrorResponse  "MISSING_REPORT o SCOPE_LOCKED"
// @Router       /api/recovery/detect-shipments [post]
func (h *RecoveryHandler) DetectShipments(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	resp, err := h.detect.Detect(c.Context(), scope)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// GetSummary godoc
// @Summary      Resumen de reclamos del scope (dashboard)
// @Tags         recovery
// @Security     Bearer
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {object}  entity.ClaimSummary
// @Router       /api/recovery/summary [get]
func (h *RecoveryHandler) GetSummary(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	summary, err := h.query.GetSummary(c.Context(), scope)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(summary)
}

// GetClaims godoc
// @Summary      Listado detallado de reclamos
// @Tags         recovery
// @Security     Bearer
// @Produce      json
// @Param        country  query  string  true   "País"
// @Param        region   query  string  true   "Región"
// @Param        status   query  string  false  "approved|pending|potential|denied|expired"
// @Param        type     query  string  false  "LOST, DAMAGED, INBOUND_SHIPMENT, ..."
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ClaimListResponse
// @Router       /api/recovery/claims [get]
func (h *RecoveryHandler) GetClaims(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	var filter dto.ClaimFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	resp, err := h.query.GetDetailedClaims(c.Context(), scope, filter)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// UpdateProductCosts godoc
// @Summary      Aplicar costos de producto a reclamos potenciales
// @Tags         recovery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Param        body     body   dto.UpdateProductCostsRequest  true  "costo por SKU"
// @Success      200  {object}  dto.UpdateProductCostsResponse
// @Failure      409  {object}  dto.ErrorResponse  "SCOPE_LOCKED"
// @Router       /api/recovery/claims/costs [put]
func (h *RecoveryHandler) UpdateProductCosts(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	var in dto.UpdateProductCostsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.query.UpdateProductCosts(c.Context(), scope, in)
	if err != nil {
		return recoveryError(c, err)
	}
	return c.JSON(resp)
}

// ClaimLetter godoc
// @Summary      Carta de reclamo en PDF
// @Tags         recovery
// @Security     Bearer
// @Produce      application/pdf
// @Param        country  query  string  true  "País"
// @Param        region   query  string  true  "Región"
// @Success      200  {file}    byte
// @Failure      409  {object}  dto.ErrorResponse  "MISSING_REPORT: sin reclamos abiertos"
// @Router       /api/recovery/claims/letter [get]
func (h *RecoveryHandler) ClaimLetter(c *fiber.Ctx) error {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return recoveryError(c, domain.ErrInvalidInput)
	}
	pdf, err := h.query.GenerateClaimLetter(c.Context(), scope)
	if err != nil {
		return recoveryError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="claim-letter.pdf"`)
	return c.Send(pdf)
}
