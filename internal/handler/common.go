package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"bank-ledger/internal/errors"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AmountRequest is the body of every single-account money operation.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// BalanceResponse reports the balance after an operation.
type BalanceResponse struct {
	AccountNumber uint64 `json:"account_number"`
	Balance       string `json:"balance"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{Data: data}
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")

	statusCode := appErr.HTTPStatus()
	errResponse := Error{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{Error: &errResponse})
}

// writeFailure reports err, hiding anything that is not an AppError.
func writeFailure(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		writeError(w, appErr)
		return
	}
	writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
}

func accountNumberVar(r *http.Request) (uint64, error) {
	raw := mux.Vars(r)["account_number"]
	number, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || number == 0 {
		return 0, errors.NewAppError(errors.InvalidInput, "invalid account number")
	}
	return number, nil
}

func decodeAmount(r *http.Request) (decimal.Decimal, error) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return decimal.Zero, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error())
	}
	return parseAmount(req.Amount)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error())
	}
	return amount, nil
}
