package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boomiis-api/config"
	"boomiis-api/models"
	"boomiis-api/payments"
	"boomiis-api/statemachine"
	"boomiis-api/store"
)

type OrderItemRequest struct {
	ItemSlug  string  `json:"item_slug" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	// Subtotal is accepted for compatibility and always recomputed
	Subtotal float64 `json:"subtotal"`
}

type PlaceOrderRequest struct {
	FullName     string             `json:"full_name"`
	Email        string             `json:"email" binding:"omitempty,email"`
	Phone        string             `json:"phone"`
	OrderType    models.OrderType   `json:"order_type" binding:"required,oneof=pickup delivery"`
	Address      string             `json:"address"`
	ScheduledFor *time.Time         `json:"scheduled_for"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes        string             `json:"notes"`
}

type ConfirmOrderRequest struct {
	OrderID    string `json:"order_id"`
	PaymentRef string `json:"payment_ref"`
}

// Totals is the server side price breakdown of an order
type Totals struct {
	Subtotal float64
	Taxes    float64
	Fees     float64
	Total    float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100 //nolint:mnd
}

// CalculateTotals sets each line subtotal to unit price times quantity and
// prices the order. Unit prices are taken as supplied; only taxes and the
// total are rounded to the minor unit.
func CalculateTotals(items []models.OrderItem, pricing config.Pricing) Totals {
	var t Totals
	for i := range items {
		items[i].Subtotal = items[i].UnitPrice * float64(items[i].Quantity)
		t.Subtotal += items[i].Subtotal
	}

	t.Taxes = round2(t.Subtotal * pricing.TaxRate)
	t.Fees = pricing.OrderFee
	t.Total = round2(t.Subtotal + t.Taxes + t.Fees)
	return t
}

// PlaceOrder prices and stores a web order. With a payment processor configured
// the intent is created first; no order is stored when that fails.
func (h *Handler) PlaceOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			ItemSlug:  it.ItemSlug,
			Title:     it.Title,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	totals := CalculateTotals(items, h.cfg.Pricing)

	order := models.Order{
		Record:       models.Record{ID: uuid.NewString()},
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		OrderType:    req.OrderType,
		Address:      req.Address,
		ScheduledFor: req.ScheduledFor,
		Items:        items,
		Notes:        req.Notes,
		Subtotal:     totals.Subtotal,
		Taxes:        totals.Taxes,
		Fees:         totals.Fees,
		Total:        totals.Total,
		Currency:     h.cfg.Pricing.Currency,
		Status:       models.StatusPaymentRequired,
	}

	var clientSecret *string
	if h.payments != nil {
		intent, err := h.payments.CreateIntent(ctx, payments.ToMinorUnits(order.Total), order.Currency, map[string]string{
			"site":     h.cfg.SiteName,
			"order_id": order.ID,
		})
		if err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to create payment intent")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Payment processor error: " + truncate(err.Error(), processorMessageLimit),
			})
			return
		}
		order.PaymentIntentID = intent.ID
		clientSecret = &intent.ClientSecret
	}

	if err := store.Create(ctx, h.db, &order); err != nil {
		internalError(c, err, "Failed to place order")
		return
	}

	log.Info().Str("order_id", order.ID).Float64("total", order.Total).Msg("order placed")

	c.JSON(http.StatusCreated, gin.H{
		"order_id":      order.ID,
		"client_secret": clientSecret,
	})
}

// ConfirmOrder marks an order paid. Orders carrying a payment intent are only
// confirmed once the processor reports the intent as succeeded.
func (h *Handler) ConfirmOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req ConfirmOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing order_id"})
		return
	}
	if _, err := uuid.Parse(req.OrderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	order, err := store.First[models.Order](ctx, h.db, store.Filter{"id": req.OrderID})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		internalError(c, err, "Failed to load order")
		return
	}

	if order.Status == models.StatusPaid {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	if err := statemachine.CanTransition(order.Status, models.StatusPaid, statemachine.ActorCustomer); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	ref := req.PaymentRef
	if order.PaymentIntentID != "" {
		if h.payments == nil {
			internalError(c, payments.ErrDisabled, "Payment processor is not configured")
			return
		}

		intent, err := h.payments.GetIntent(ctx, order.PaymentIntentID)
		if err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to fetch payment intent")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Payment processor error: " + truncate(err.Error(), processorMessageLimit),
			})
			return
		}
		if !intent.Succeeded() {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not completed", "payment_status": intent.Status})
			return
		}
		if ref == "" {
			ref = intent.ID
		}
	}

	n, err := store.Update[models.Order](ctx, h.db,
		store.Filter{"id": order.ID, "status": models.StatusPaymentRequired},
		map[string]any{"status": models.StatusPaid, "payment_ref": ref},
	)
	if err != nil {
		internalError(c, err, "Failed to confirm order")
		return
	}
	if n == 0 {
		// status moved underneath us; answer from the stored state
		current, err := store.First[models.Order](ctx, h.db, store.Filter{"id": order.ID})
		if err != nil {
			internalError(c, err, "Failed to load order")
			return
		}
		if current.Status != models.StatusPaid {
			c.JSON(http.StatusConflict, gin.H{"error": "Order is " + string(current.Status)})
			return
		}
	}

	log.Info().Str("order_id", order.ID).Str("payment_ref", ref).Msg("order paid")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
