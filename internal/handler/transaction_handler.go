package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bank-ledger/internal/errors"
	"bank-ledger/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService[uint64]
	creditService      *service.CreditService[uint64]
}

func NewTransactionHandler(transactionService *service.TransactionService[uint64], creditService *service.CreditService[uint64]) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		creditService:      creditService,
	}
}

type TransferRequest struct {
	SourceAccountNumber      json.Number `json:"source_account_number"`
	DestinationAccountNumber json.Number `json:"destination_account_number"`
	Amount                   string      `json:"amount"`
}

type TransferResponse struct {
	SourceAccountNumber      uint64 `json:"source_account_number"`
	DestinationAccountNumber uint64 `json:"destination_account_number"`
	Amount                   string `json:"amount"`
	Status                   string `json:"status"`
}

type WithdrawalResponse struct {
	TransactionID string `json:"transaction_id"`
	BalanceResponse
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberVar(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	amount, err := decodeAmount(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var receipt service.Receipt
	balance, err := h.transactionService.Withdraw(r.Context(), number, amount, func(rc service.Receipt) {
		receipt = rc
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, WithdrawalResponse{
		TransactionID: receipt.TransactionID.String(),
		BalanceResponse: BalanceResponse{
			AccountNumber: number,
			Balance:       balance.StringFixed(2),
		},
	})
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	number, err := accountNumberVar(r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	amount, err := decodeAmount(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	balance, err := h.transactionService.Deposit(r.Context(), number, amount)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{AccountNumber: number, Balance: balance.StringFixed(2)})
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	source, err := strconv.ParseUint(req.SourceAccountNumber.String(), 10, 64)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid source_account_number"))
		return
	}
	destination, err := strconv.ParseUint(req.DestinationAccountNumber.String(), 10, 64)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid destination_account_number"))
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.transactionService.Transfer(r.Context(), source, destination, amount); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransferResponse{
		SourceAccountNumber:      source,
		DestinationAccountNumber: destination,
		Amount:                   amount.StringFixed(2),
		Status:                   "completed",
	})
}

// Apply returns a handler crediting the product to the account.
func (h *TransactionHandler) Apply(product service.Product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := accountNumberVar(r)
		if err != nil {
			writeFailure(w, err)
			return
		}
		amount, err := decodeAmount(r)
		if err != nil {
			writeFailure(w, err)
			return
		}

		balance, err := h.creditService.Apply(r.Context(), product, number, amount)
		if err != nil {
			writeFailure(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, BalanceResponse{AccountNumber: number, Balance: balance.StringFixed(2)})
	}
}

// Pay returns a handler booking a payment against the product.
func (h *TransactionHandler) Pay(product service.Product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := accountNumberVar(r)
		if err != nil {
			writeFailure(w, err)
			return
		}
		amount, err := decodeAmount(r)
		if err != nil {
			writeFailure(w, err)
			return
		}

		balance, err := h.creditService.MakePayment(r.Context(), product, number, amount)
		if err != nil {
			writeFailure(w, err)
			return
		}

		writeJSON(w, http.StatusOK, BalanceResponse{AccountNumber: number, Balance: balance.StringFixed(2)})
	}
}
