package wallets

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/dto"
	walletrepo "github.com/dmarkhas/walletengine/internal/repo/wallet-repo"
	"github.com/dmarkhas/walletengine/pkg/utils"
)

type Service interface {
	GetWallets(ctx context.Context, userID int) ([]domain.Wallet, error)
	GetBalance(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
	Deactivate(ctx context.Context, userID, walletID int) error
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func userIDFromRequest(r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	return userID, err == nil && userID > 0
}

// GetWallets godoc
//
//	@Summary		Get wallets for user
//	@Description	List all wallets of a user.
//	@Tags			Wallets
//	@Produce		json
//	@Param			userID	path		int						true	"User id"
//	@Success		200		{array}		dto.WalletResponseDTO	"Wallets list"
//	@Failure		400		{object}	utils.Response			"Invalid user id"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/users/{userID}/wallets [get]
func (h *WalletHandler) GetWallets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	wallets, err := h.walletService.GetWallets(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]dto.WalletResponseDTO, 0, len(wallets))
	for _, wallet := range wallets {
		resp = append(resp, dto.WalletResponseDTO{
			ID:       wallet.ID,
			Type:     wallet.Type,
			Currency: wallet.Currency,
			Balance:  wallet.Balance,
			InOrder:  wallet.InOrder,
			Status:   wallet.Status,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetBalance godoc
//
//	@Summary		Get a single wallet balance
//	@Description	Return the wallet for the given type and currency, provisioning it with a zero balance on first request.
//	@Tags			Wallets
//	@Produce		json
//	@Param			userID		path		int		true	"User id"
//	@Param			type		query		string	false	"Wallet type, defaults to FIAT"
//	@Param			currency	query		string	true	"Wallet currency"
//	@Success		200			{object}	dto.WalletResponseDTO	"Wallet"
//	@Failure		400			{object}	utils.Response			"Invalid user id or missing currency"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/users/{userID}/wallets/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	walletType := r.URL.Query().Get("type")
	if walletType == "" {
		walletType = domain.FiatWallet
	}
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "currency is required")
		return
	}

	wallet, err := h.walletService.GetBalance(r.Context(), userID, walletType, currency)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WalletResponseDTO{
		ID:       wallet.ID,
		Type:     wallet.Type,
		Currency: wallet.Currency,
		Balance:  wallet.Balance,
		InOrder:  wallet.InOrder,
		Status:   wallet.Status,
	})
}

// Deactivate godoc
//
//	@Summary		Deactivate a wallet
//	@Description	Retire a wallet. Wallets are never deleted, only flipped to INACTIVE.
//	@Tags			Wallets
//	@Produce		json
//	@Param			userID		path		int				true	"User id"
//	@Param			walletID	path		int				true	"Wallet id"
//	@Success		200			{object}	utils.Response	"Wallet deactivated"
//	@Failure		400			{object}	utils.Response	"Invalid user or wallet id"
//	@Failure		404			{object}	utils.Response	"Wallet not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{userID}/wallets/{walletID} [delete]
func (h *WalletHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	walletID, err := strconv.Atoi(chi.URLParam(r, "walletID"))
	if err != nil || walletID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid wallet id")
		return
	}

	err = h.walletService.Deactivate(r.Context(), userID, walletID)
	switch {
	case errors.Is(err, walletrepo.ErrWalletNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Wallet not found")
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Wallet deactivated"})
}

// GetTransactions godoc
//
//	@Summary		Get transactions for user
//	@Description	List all ledger transactions of a user, newest first.
//	@Tags			Wallets
//	@Produce		json
//	@Param			userID	path		int							true	"User id"
//	@Success		200		{array}		dto.TransactionResponseDTO	"Transactions list"
//	@Failure		400		{object}	utils.Response				"Invalid user id"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/users/{userID}/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	txns, err := h.walletService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]dto.TransactionResponseDTO, 0, len(txns))
	for _, txn := range txns {
		resp = append(resp, dto.TransactionResponseDTO{
			ID:          txn.ID,
			WalletID:    txn.WalletID,
			Type:        txn.Type,
			Amount:      txn.Amount,
			Fee:         txn.Fee,
			Status:      txn.Status,
			ReferenceID: txn.ReferenceID,
			Description: txn.Description,
			CreatedAt:   txn.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
