package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lankamart/payout-engine/internal/domain"
	customError "github.com/lankamart/payout-engine/pkg/errors"
	"github.com/lankamart/payout-engine/pkg/response"
)

// PayoutProvider is the slice of the payout service the HTTP layer needs.
type PayoutProvider interface {
	GetSchedule(ctx context.Context) (*domain.PaymentSchedule, error)
	EligibleOrders(ctx context.Context, previous bool) (*domain.EligibleOrdersResponse, error)
	Dashboard(ctx context.Context) (*domain.DashboardResponse, error)
	SellerEarnings(ctx context.Context, shopID uuid.UUID, from, to time.Time) (*domain.SellerEarningsResponse, error)
	CompleteCycle(ctx context.Context) (*domain.PaymentSchedule, error)
}

type PayoutHandler struct {
	service PayoutProvider
}

func NewPayoutHandler(service PayoutProvider) *PayoutHandler {
	return &PayoutHandler{service: service}
}

// GetSchedule returns the current payout schedule
func (h *PayoutHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{Schedule: schedule})
}

// EligibleOrders returns the orders counting toward the current payout.
// ?period=previous selects the preceding window instead.
func (h *PayoutHandler) EligibleOrders(w http.ResponseWriter, r *http.Request) {
	previous := r.URL.Query().Get("period") == "previous"

	result, err := h.service.EligibleOrders(r.Context(), previous)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// Dashboard returns per-shop eligible totals for the current period
func (h *PayoutHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// CompleteCycle marks the current cycle as paid out today
func (h *PayoutHandler) CompleteCycle(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.CompleteCycle(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{Schedule: schedule})
}

// SellerEarnings returns one shop's settled orders over ?from / ?to
func (h *PayoutHandler) SellerEarnings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopID, err := uuid.Parse(vars["shopId"])
	if err != nil {
		response.BadRequest(w, "Invalid shop ID", err)
		return
	}

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "Invalid or missing 'from' date, expected YYYY-MM-DD", err)
		return
	}

	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "Invalid or missing 'to' date, expected YYYY-MM-DD", err)
		return
	}

	result, err := h.service.SellerEarnings(r.Context(), shopID, from, to)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// writeBusinessError maps service errors onto HTTP statuses.
func writeBusinessError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeShopNotFound, customError.ErrCodeWithdrawalNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeInvalidDateRange, customError.ErrCodeInvalidWithdrawalAmount:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeInsufficientBalance, customError.ErrCodeNoPreviousPeriod:
		response.UnprocessableEntity(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeWithdrawalAlreadyProcessed:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}
