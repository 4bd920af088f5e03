package investments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/dto"
	investmentrepo "github.com/dmarkhas/walletengine/internal/repo/investment-repo"
	planrepo "github.com/dmarkhas/walletengine/internal/repo/plan-repo"
	"github.com/dmarkhas/walletengine/internal/service/investmentservice"
	"github.com/dmarkhas/walletengine/internal/service/ledgerservice"
	"github.com/dmarkhas/walletengine/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, userID, planID, durationID int, amount decimal.Decimal) (*domain.Investment, error)
	GetInvestments(ctx context.Context, userID int) ([]domain.Investment, error)
	Cancel(ctx context.Context, userID int, investmentID string) error
	Sweep(ctx context.Context, limit uint32) (swept, failed int, err error)
}

type InvestmentHandler struct {
	investmentService Service
	sweepLimit        uint32
}

func New(investmentService Service, sweepLimit uint32) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		sweepLimit:        sweepLimit,
	}
}

func userIDFromRequest(r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	return userID, err == nil && userID > 0
}

func toResponse(inv *domain.Investment) dto.InvestmentResponseDTO {
	return dto.InvestmentResponseDTO{
		ID:        inv.ID,
		PlanID:    inv.PlanID,
		Amount:    inv.Amount,
		Profit:    inv.Profit,
		Status:    inv.Status,
		EndDate:   inv.EndDate,
		CreatedAt: inv.CreatedAt,
	}
}

// Create godoc
//
//	@Summary		Create an investment
//	@Description	Open an investment on a plan: the principal is debited from the wallet and the profit is frozen at the plan's current percentage.
//	@Tags			Investments
//	@Accept			json
//	@Produce		json
//	@Param			userID		path		int							true	"User id"
//	@Param			investment	body		dto.CreateInvestmentRequestDTO	true	"Investment request"
//	@Success		201			{object}	dto.InvestmentResponseDTO	"Investment created"
//	@Failure		400			{object}	utils.Response				"Malformed request"
//	@Failure		402			{object}	utils.Response				"Insufficient wallet balance"
//	@Failure		404			{object}	utils.Response				"Plan or duration not found"
//	@Failure		409			{object}	utils.Response				"User already has an active investment for this plan"
//	@Failure		422			{object}	utils.Response				"Amount outside plan limits"
//	@Failure		500			{object}	utils.Response				"Internal server error"
//	@Router			/api/users/{userID}/investments [post]
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.CreateInvestmentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Amount.IsPositive() {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "amount must be positive")
		return
	}

	inv, err := h.investmentService.Create(r.Context(), userID, req.PlanID, req.DurationID, req.Amount)
	switch {
	case errors.Is(err, planrepo.ErrPlanNotFound), errors.Is(err, planrepo.ErrDurationNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, investmentservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, investmentrepo.ErrDuplicateInvestment):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, "Insufficient balance")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, toResponse(inv))
}

// GetInvestments godoc
//
//	@Summary		Get investments for user
//	@Description	List all investments of a user, newest first.
//	@Tags			Investments
//	@Produce		json
//	@Param			userID	path		int							true	"User id"
//	@Success		200		{array}		dto.InvestmentResponseDTO	"Investments list"
//	@Failure		400		{object}	utils.Response				"Invalid user id"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/users/{userID}/investments [get]
func (h *InvestmentHandler) GetInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	investments, err := h.investmentService.GetInvestments(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]dto.InvestmentResponseDTO, 0, len(investments))
	for i := range investments {
		resp = append(resp, toResponse(&investments[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Cancel godoc
//
//	@Summary		Cancel an investment
//	@Description	Cancel an active investment: the principal returns to the wallet and no profit is paid. Completed investments cannot be cancelled.
//	@Tags			Investments
//	@Produce		json
//	@Param			userID			path		int				true	"User id"
//	@Param			investmentID	path		string			true	"Investment id"
//	@Success		200				{object}	utils.Response	"Investment cancelled"
//	@Failure		400				{object}	utils.Response	"Invalid user id"
//	@Failure		404				{object}	utils.Response	"Investment not found"
//	@Failure		409				{object}	utils.Response	"Investment already completed"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{userID}/investments/{investmentID} [delete]
func (h *InvestmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	investmentID := chi.URLParam(r, "investmentID")

	err := h.investmentService.Cancel(r.Context(), userID, investmentID)
	switch {
	case errors.Is(err, investmentrepo.ErrInvestmentNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Investment not found")
		return
	case errors.Is(err, investmentservice.ErrInvestmentCompleted):
		utils.RespondWithError(w, http.StatusConflict, "Investment already completed")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Investment cancelled"})
}

// Sweep godoc
//
//	@Summary		Trigger a maturity sweep
//	@Description	Pay out every matured active investment and report how many were swept. Manual trigger alongside the periodic sweeper.
//	@Tags			Investments
//	@Produce		json
//	@Success		200	{object}	dto.SweepResponseDTO	"Sweep finished"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/investments/sweep [post]
func (h *InvestmentHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	swept, failed, err := h.investmentService.Sweep(r.Context(), h.sweepLimit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SweepResponseDTO{Swept: swept, Failed: failed})
}
