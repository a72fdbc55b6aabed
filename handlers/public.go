package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"boomiis-api/models"
	"boomiis-api/statemachine"
	"boomiis-api/store"
)

// GetMenu returns every category and the items matching the optional tag and category filters
func (h *Handler) GetMenu(c *gin.Context) {
	ctx := c.Request.Context()

	filter := store.Filter{}
	if category := c.Query("category"); category != "" {
		filter["category_slug"] = category
	}

	items, err := store.Find[models.MenuItem](ctx, h.db, filter, store.OrderBy("title asc"))
	if err != nil {
		internalError(c, err, "Failed to load menu")
		return
	}

	// tags live in a JSON column, membership is checked here
	if tag := c.Query("tag"); tag != "" {
		tagged := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if item.HasTag(tag) {
				tagged = append(tagged, item)
			}
		}
		items = tagged
	}

	categories, err := store.Find[models.MenuCategory](ctx, h.db, nil, store.OrderBy("position asc"))
	if err != nil {
		internalError(c, err, "Failed to load menu")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories, "items": items})
}

// ListBlog returns published posts, newest first. Posts without a publish date
// sort as if published now.
func (h *Handler) ListBlog(c *gin.Context) {
	posts, err := store.Find[models.BlogPost](c.Request.Context(), h.db, store.Filter{"published": true})
	if err != nil {
		internalError(c, err, "Failed to load posts")
		return
	}

	now := time.Now().UTC()
	publishedAt := func(p models.BlogPost) time.Time {
		if p.PublishedAt == nil {
			return now
		}
		return *p.PublishedAt
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return publishedAt(posts[i]).After(publishedAt(posts[j]))
	})

	c.JSON(http.StatusOK, posts)
}

// GetBlogPost returns a published post by slug
func (h *Handler) GetBlogPost(c *gin.Context) {
	post, err := store.First[models.BlogPost](c.Request.Context(), h.db, store.Filter{
		"slug":      c.Param("slug"),
		"published": true,
	})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		internalError(c, err, "Failed to load post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListGallery returns active images by position
func (h *Handler) ListGallery(c *gin.Context) {
	images, err := store.Find[models.GalleryImage](c.Request.Context(), h.db,
		store.Filter{"is_active": true}, store.OrderBy("position asc"))
	if err != nil {
		internalError(c, err, "Failed to load gallery")
		return
	}

	c.JSON(http.StatusOK, images)
}

type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Subscribe records a newsletter signup. Repeating an email is a no-op.
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	sub := models.Subscriber{Email: req.Email, Name: req.Name, Source: req.Source}
	if _, err := store.CreateIfAbsent(c.Request.Context(), h.db, &sub, "email"); err != nil {
		internalError(c, err, "Failed to subscribe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetStateMachineInfo returns the order lifecycle
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	statuses := []models.OrderStatus{models.StatusPaymentRequired, models.StatusPaid, models.StatusCancelled}

	terminal := []models.OrderStatus{}
	for _, s := range statuses {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "Web order payment lifecycle",
	})
}
