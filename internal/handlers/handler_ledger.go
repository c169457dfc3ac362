package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ledgerService portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// getAccountLedger returns posted lines of an account with running balances,
// most recent first.
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("account_id", accountID))

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.GetAccountLedger(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve ledger")
		return
	}

	logger.Debug("Ledger retrieved", slog.Int("count", len(resp.Entries)))
	c.JSON(http.StatusOK, resp)
}
