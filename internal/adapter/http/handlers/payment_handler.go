package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"cardpay/internal/adapter/http/dto/request"
	"cardpay/internal/adapter/http/dto/response"
	"cardpay/internal/infrastructure/payments"
	"cardpay/internal/usecase"
	"cardpay/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles HTTP requests for card payments.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
	now     func() time.Time
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc, now: time.Now}
}

// CreatePayment godoc
// @Summary      Charge a card
// @Description  Validates the order and card, then charges through the configured gateway
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment  body      request.PaymentCreateRequest  true  "Order and card"
// @Success      200      {object}  response.PaymentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	card := req.ToCreditCard()
	log.Printf("[payment][handler] create start currency=%q brand=%s last4=%s", req.Order.Currency, card.Brand(), card.LastFour())

	created, err := h.usecase.Process(c.Request.Context(), req.ToOrder(), card)
	if err != nil {
		log.Printf("[payment][handler] create failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success payment_id=%s processor=%s", created.ID, created.Result.Processor)

	c.JSON(http.StatusOK, response.FromPaymentRecord(created))
}

// GetPayment godoc
// @Summary  Get a processed payment
// @Tags     payments
// @Produce  json
// @Param    id   path      string  true  "Payment ID"
// @Success  200  {object}  response.PaymentResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id := c.Param("id")
	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[payment][handler] get failed id=%s err=%v", id, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecord(p))
}

// ListPayments godoc
// @Summary  List processed payments by processor
// @Tags     payments
// @Produce  json
// @Param    processor  query     string  true  "PayPal, Braintree or MercadoPago"
// @Success  200        {array}   response.PaymentResponse
// @Failure  400        {object}  pkg.HTTPError
// @Router   /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	processor := c.Query("processor")
	ps, err := h.usecase.ListByProcessor(c.Request.Context(), processor)
	if err != nil {
		log.Printf("[payment][handler] list failed processor=%s err=%v", processor, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentRecords(ps))
}

// GetOptions godoc
// @Summary  Checkout form options
// @Tags     payments
// @Produce  json
// @Success  200  {object}  response.FormOptionsResponse
// @Router   /payments/options [get]
func (h *PaymentHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromFormOptions(h.usecase.FormOptions(h.now())))
}

func mapPaymentError(err error) *pkg.AppError {
	var validationErr *usecase.ValidationError
	var routingErr *payments.RoutingError
	var processorErr *payments.ProcessorError

	switch {
	case errors.As(err, &validationErr):
		return pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Order or card is invalid", http.StatusUnprocessableEntity).
			WithDetails(response.FromValidationError(validationErr))
	case errors.As(err, &routingErr):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_CARD_CURRENCY", routingErr.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &processorErr):
		return pkg.NewDomainError("PAYMENT_PROCESSOR_ERROR", processorErr.Processor+" could not process the payment", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidProcessor):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentRecordNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrGatewayNotConfigured), errors.Is(err, payments.ErrGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway not configured", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
