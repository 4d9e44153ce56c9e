package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"bank-ledger/internal/domain"
	"bank-ledger/internal/errors"
	"bank-ledger/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService[uint64]
}

func NewAccountHandler(accountService *service.AccountService[uint64]) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type CreateAccountRequest struct {
	AccountNumber  uint64 `json:"account_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PIN            int    `json:"pin"`
	Category       string `json:"category"`
	InitialBalance string `json:"initial_balance"`
}

// AccountResponse carries customer details unmasked, like every other API
// response. Masking is applied by the console only.
type AccountResponse struct {
	AccountNumber uint64 `json:"account_number"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Category      string `json:"category"`
	Balance       string `json:"balance"`
}

type TransactionResponse struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Amount       string  `json:"amount"`
	SignedAmount string  `json:"signed_amount"`
	Counterparty *uint64 `json:"counterparty,omitempty"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.Number,
		FullName:      account.FullName,
		Email:         account.Email,
		Category:      string(account.Category),
		Balance:       account.Balance.StringFixed(2),
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return
	}
	if req.AccountNumber == 0 {
		writeError(w, errors.NewAppError(errors.InvalidInput, "account number must be positive"))
		return
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := decimal.NewFromString(req.InitialBalance)
		if err != nil {
			writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid initial_balance format"))
			return
		}
		initialBalance = parsed
	}

	account, err := h.accountService.CreateAccount(r.Context(), service.NewAccount{
		Number:         req.AccountNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Secret:         req.PIN,
		Category:       domain.Category(req.Category),
		InitialBalance: initialBalance,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(account))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberVar(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	account, err := h.accountService.GetAccount(number)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberVar(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	transactions, err := h.accountService.History(number)
	if err != nil {
		writeFailure(w, err)
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, trx := range transactions {
		response = append(response, TransactionResponse{
			ID:           trx.ID.String(),
			Date:         trx.Date.UTC().Format(time.RFC3339),
			Type:         string(trx.Kind),
			Amount:       trx.Amount.StringFixed(2),
			SignedAmount: trx.SignedAmount().StringFixed(2),
			Counterparty: trx.Counterparty,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
