package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boomiis-api/middleware"
	"boomiis-api/models"
	"boomiis-api/statemachine"
	"boomiis-api/store"
)

type UpsertCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required,slug"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	IsActive    *bool  `json:"is_active"`
}

type UpsertItemRequest struct {
	Title        string   `json:"title" binding:"required"`
	Slug         string   `json:"slug" binding:"required,slug"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"gte=0"`
	Currency     string   `json:"currency" binding:"omitempty,len=3"`
	CategorySlug string   `json:"category_slug" binding:"required,slug"`
	ImageURL     string   `json:"image_url"`
	Tags         []string `json:"tags"`
	Allergens    []string `json:"allergens"`
	IsActive     *bool    `json:"is_active"`
}

type UpsertBlogPostRequest struct {
	Title         string     `json:"title" binding:"required"`
	Slug          string     `json:"slug" binding:"required,slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content" binding:"required"`
	CoverImageURL string     `json:"cover_image_url"`
	Published     *bool      `json:"published"`
	PublishedAt   *time.Time `json:"published_at"`
}

type CreateGalleryImageRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url" binding:"required"`
	Category string `json:"category"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
	IsActive *bool  `json:"is_active"`
}

type UpsertSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       any    `json:"value"`
	Description string `json:"description"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=payment_required paid cancelled"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// AdminGetMenu returns every category and item, inactive ones included
func (h *Handler) AdminGetMenu(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := store.Find[models.MenuCategory](ctx, h.db, nil, store.OrderBy("position asc"))
	if err != nil {
		internalError(c, err, "Failed to load menu")
		return
	}
	items, err := store.Find[models.MenuItem](ctx, h.db, nil, store.OrderBy("category_slug asc"), store.OrderBy("title asc"))
	if err != nil {
		internalError(c, err, "Failed to load menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories, "items": items})
}

// AdminUpsertCategory creates or fully replaces a category by slug
func (h *Handler) AdminUpsertCategory(c *gin.Context) {
	var req UpsertCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	cat := models.MenuCategory{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Position:    req.Position,
		IsActive:    boolOr(req.IsActive, true),
	}
	stored, err := store.Upsert(c.Request.Context(), h.db, &cat, "slug", cat.Slug)
	if err != nil {
		internalError(c, err, "Failed to save category")
		return
	}

	log.Info().Str("admin", middleware.GetAdminEmail(c)).Str("slug", stored.Slug).Msg("category saved")
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": stored.ID})
}

// AdminUpsertItem creates or fully replaces a menu item by slug. The referenced
// category must exist.
func (h *Handler) AdminUpsertItem(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpsertItemRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := store.First[models.MenuCategory](ctx, h.db, store.Filter{"slug": req.CategorySlug})
	if errors.Is(err, store.ErrNotFound) {
		unprocessable(c, "category_slug", "exists", "Unknown category")
		return
	}
	if err != nil {
		internalError(c, err, "Failed to save item")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.cfg.Pricing.Currency
	}

	item := models.MenuItem{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		Currency:     currency,
		CategorySlug: req.CategorySlug,
		ImageURL:     req.ImageURL,
		Tags:         models.NormalizeSet(req.Tags),
		Allergens:    models.NormalizeSet(req.Allergens),
		IsActive:     boolOr(req.IsActive, true),
	}
	stored, err := store.Upsert(ctx, h.db, &item, "slug", item.Slug)
	if err != nil {
		internalError(c, err, "Failed to save item")
		return
	}

	log.Info().Str("admin", middleware.GetAdminEmail(c)).Str("slug", stored.Slug).Msg("menu item saved")
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": stored.ID})
}

// AdminGetAllOrders returns orders, newest first, with a per-status summary
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	filter := store.Filter{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	orders, err := store.Find[models.Order](c.Request.Context(), h.db, filter, store.OrderBy("created_at desc"))
	if err != nil {
		internalError(c, err, "Failed to load orders")
		return
	}

	summary := map[string]int{}
	var revenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusPaid {
			revenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": round2(revenue),
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminUpdateOrderStatus applies an admin transition to an order
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	orderID := c.Param("id")
	if _, err := uuid.Parse(orderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := store.First[models.Order](ctx, h.db, store.Filter{"id": orderID})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		internalError(c, err, "Failed to load order")
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, statemachine.ActorAdmin); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	n, err := store.Update[models.Order](ctx, h.db,
		store.Filter{"id": order.ID, "status": order.Status},
		map[string]any{"status": req.Status},
	)
	if err != nil {
		internalError(c, err, "Failed to update order")
		return
	}
	if n == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, reload and retry"})
		return
	}

	log.Info().Str("admin", middleware.GetAdminEmail(c)).Str("order_id", order.ID).
		Str("from", string(order.Status)).Str("to", string(req.Status)).Msg("order status updated")

	c.JSON(http.StatusOK, gin.H{
		"order_id":        order.ID,
		"previous_status": order.Status,
		"new_status":      req.Status,
	})
}

// AdminGetReservations lists reservations, optionally for one date
func (h *Handler) AdminGetReservations(c *gin.Context) {
	filter := store.Filter{}
	if date := c.Query("date"); date != "" {
		filter["date"] = date
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	reservations, err := store.Find[models.Reservation](c.Request.Context(), h.db, filter,
		store.OrderBy("date asc"), store.OrderBy("time asc"))
	if err != nil {
		internalError(c, err, "Failed to load reservations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

func (h *Handler) AdminGetInquiries(c *gin.Context) {
	inquiries, err := store.Find[models.EventInquiry](c.Request.Context(), h.db, nil, store.OrderBy("created_at desc"))
	if err != nil {
		internalError(c, err, "Failed to load inquiries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(inquiries), "inquiries": inquiries})
}

func (h *Handler) AdminGetSubscribers(c *gin.Context) {
	subscribers, err := store.Find[models.Subscriber](c.Request.Context(), h.db, nil, store.OrderBy("created_at desc"))
	if err != nil {
		internalError(c, err, "Failed to load subscribers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(subscribers), "subscribers": subscribers})
}

// AdminGetSettings returns every site setting
func (h *Handler) AdminGetSettings(c *gin.Context) {
	settings, err := store.Find[models.SiteSetting](c.Request.Context(), h.db, nil, store.OrderByColumn("key", false))
	if err != nil {
		internalError(c, err, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// AdminUpsertSetting creates or replaces a setting by key. Values are an
// object, a string, a number or a bool.
func (h *Handler) AdminUpsertSetting(c *gin.Context) {
	var req UpsertSettingRequest
	if !bindJSON(c, &req) {
		return
	}

	switch req.Value.(type) {
	case map[string]any, string, float64, bool:
	default:
		unprocessable(c, "value", "type", "Value must be an object, string, number or bool")
		return
	}

	setting := models.SiteSetting{Key: req.Key, Value: req.Value, Description: req.Description}
	stored, err := store.Upsert(c.Request.Context(), h.db, &setting, "key", setting.Key)
	if err != nil {
		internalError(c, err, "Failed to save setting")
		return
	}

	c.JSON(http.StatusOK, stored)
}

// AdminUpsertBlogPost creates or fully replaces a post by slug
func (h *Handler) AdminUpsertBlogPost(c *gin.Context) {
	var req UpsertBlogPostRequest
	if !bindJSON(c, &req) {
		return
	}

	post := models.BlogPost{
		Title:         req.Title,
		Slug:          req.Slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		Published:     boolOr(req.Published, true),
		PublishedAt:   req.PublishedAt,
	}
	stored, err := store.Upsert(c.Request.Context(), h.db, &post, "slug", post.Slug)
	if err != nil {
		internalError(c, err, "Failed to save post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": stored.ID})
}

// AdminCreateGalleryImage adds an image to the gallery
func (h *Handler) AdminCreateGalleryImage(c *gin.Context) {
	var req CreateGalleryImageRequest
	if !bindJSON(c, &req) {
		return
	}

	img := models.GalleryImage{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Alt:      req.Alt,
		Position: req.Position,
		IsActive: boolOr(req.IsActive, true),
	}
	if err := store.Create(c.Request.Context(), h.db, &img); err != nil {
		internalError(c, err, "Failed to save image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": img.ID})
}
