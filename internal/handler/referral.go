package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/lankamart/payout-engine/internal/domain"
	"github.com/lankamart/payout-engine/pkg/response"
)

// ReferralProvider is the slice of the referral service the HTTP layer needs.
type ReferralProvider interface {
	RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.WithdrawalResponse, error)
	ProcessWithdrawal(ctx context.Context, id uuid.UUID, approve bool) (*domain.WithdrawalRequest, error)
	PendingWithdrawals(ctx context.Context) ([]*domain.WithdrawalRequest, error)
}

type ReferralHandler struct {
	service   ReferralProvider
	validator *validator.Validate
}

func NewReferralHandler(service ReferralProvider) *ReferralHandler {
	return &ReferralHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateWithdrawal handles a user's request to cash out referral earnings
func (h *ReferralHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID", err)
		return
	}

	var request domain.CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, err := h.service.RequestWithdrawal(r.Context(), userID, request.Amount)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, result)
}

// ProcessWithdrawal approves or rejects a pending withdrawal request
func (h *ReferralHandler) ProcessWithdrawal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid withdrawal request ID", err)
		return
	}

	var request domain.ProcessWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.ProcessWithdrawal(r.Context(), id, request.Approve)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPendingWithdrawals returns requests awaiting an admin decision
func (h *ReferralHandler) ListPendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.PendingWithdrawals(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, requests)
}
