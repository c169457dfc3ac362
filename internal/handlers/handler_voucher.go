package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests related to vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// voucherStep is a service call that moves a voucher forward.
type voucherStep func(ctx context.Context, voucherID string, userID string) (*domain.Voucher, error)

// registerVoucherRoutes registers voucher CRUD, lifecycle and export routes.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/export", h.exportVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PUT("/:voucherID", h.updateVoucher)
		vouchers.POST("/:voucherID/submit", h.step(domain.ActionSubmit, voucherService.SubmitVoucher, http.StatusOK))
		vouchers.POST("/:voucherID/approve", h.step(domain.ActionApprove, voucherService.ApproveVoucher, http.StatusOK))
		vouchers.POST("/:voucherID/post", h.step(domain.ActionPost, voucherService.PostVoucher, http.StatusOK))
		vouchers.POST("/:voucherID/reverse", h.step(domain.ActionReverse, voucherService.ReverseVoucher, http.StatusCreated))
	}
}

// createVoucher validates and saves a draft voucher, including its generated
// counter-entry line.
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("voucher_type", string(req.Type)))
	logger.Info("Received request to create voucher", slog.Int("line_count", len(req.Lines)))

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create voucher")
		return
	}

	logger.Info("Voucher created successfully", slog.String("voucher_id", voucher.VoucherID), slog.String("voucher_number", voucher.VoucherNumber))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")
	logger = logger.With(slog.String("voucher_id", voucherID))

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), voucherID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers returns voucher headers, newest first, with token pagination.
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListVouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list vouchers")
		return
	}

	logger.Debug("Vouchers listed", slog.Int("count", len(resp.Vouchers)))
	c.JSON(http.StatusOK, resp)
}

// updateVoucher replaces the header and lines of a draft voucher.
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")
	logger = logger.With(slog.String("voucher_id", voucherID))

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actorOrAbort(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), voucherID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update voucher")
		return
	}

	logger.Info("Voucher updated successfully")
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// step wraps a lifecycle service call as a handler.
func (h *voucherHandler) step(action domain.VoucherAction, fn voucherStep, successStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		voucherID := c.Param("voucherID")
		logger = logger.With(slog.String("voucher_id", voucherID), slog.String("action", string(action)))

		userID, ok := actorOrAbort(c, logger)
		if !ok {
			return
		}

		voucher, err := fn(c.Request.Context(), voucherID, userID)
		if err != nil {
			respondError(c, logger, err, "Failed to "+string(action)+" voucher")
			return
		}

		logger.Info("Voucher action completed", slog.String("status", string(voucher.Status)))
		c.JSON(successStatus, dto.ToVoucherResponse(voucher))
	}
}

// exportVouchers streams matching vouchers as CSV.
func (h *voucherHandler) exportVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ExportVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ExportVouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	// Buffered so a failure halfway still produces a JSON error instead of a truncated file.
	var buf bytes.Buffer
	if err := h.voucherService.ExportVouchers(c.Request.Context(), &buf, params); err != nil {
		respondError(c, logger, err, "Failed to export vouchers")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="vouchers.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
