package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmarkhas/walletengine/internal/dto"
	planrepo "github.com/dmarkhas/walletengine/internal/repo/plan-repo"
	"github.com/dmarkhas/walletengine/internal/service/settlementservice"
	"github.com/dmarkhas/walletengine/pkg/utils"
)

type Service interface {
	Settle(ctx context.Context, c settlementservice.Confirmation) (*settlementservice.Result, error)
}

type PaymentHandler struct {
	settlementService Service
}

func New(settlementService Service) *PaymentHandler {
	return &PaymentHandler{
		settlementService: settlementService,
	}
}

// Webhook godoc
//
//	@Summary		Process a payment confirmation
//	@Description	Settle a payment provider confirmation: resolve the gateway fee, credit the wallet and record the transaction. Redelivery of the same external id is safe and responds with the original transaction.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			confirmation	body		dto.PaymentWebhookRequestDTO	true	"Provider confirmation"
//	@Success		200				{object}	dto.SettlementResponseDTO		"Confirmation settled, already processed or still pending"
//	@Failure		400				{object}	utils.Response					"Malformed confirmation payload"
//	@Failure		404				{object}	utils.Response					"Unknown gateway"
//	@Failure		422				{object}	utils.Response					"Currency not supported or amount outside gateway limits"
//	@Failure		500				{object}	utils.Response					"Internal server error"
//	@Router			/api/payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentWebhookRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExternalID == "" || req.UserID == 0 || req.Currency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "external_id, user_id and currency are required")
		return
	}

	confirmation := settlementservice.Confirmation{
		ExternalID:  req.ExternalID,
		Status:      req.Status,
		UserID:      req.UserID,
		Gateway:     req.Gateway,
		GrossAmount: req.Amount,
		Currency:    req.Currency,
	}
	for _, item := range req.LineItems {
		confirmation.LineItems = append(confirmation.LineItems, settlementservice.LineItem{
			Description: item.Description,
			Amount:      item.Amount,
		})
	}

	result, err := h.settlementService.Settle(r.Context(), confirmation)
	switch {
	case errors.Is(err, planrepo.ErrGatewayNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Gateway not found")
		return
	case errors.Is(err, settlementservice.ErrCurrencyNotSupported),
		errors.Is(err, settlementservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.SettlementResponseDTO{
		Status:     result.Status,
		NewBalance: result.NewBalance,
	}
	if result.Transaction != nil {
		resp.TransactionID = result.Transaction.ID
		resp.ReferenceID = result.Transaction.ReferenceID
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
