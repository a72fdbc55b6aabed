package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boomiis-api/models"
	"boomiis-api/store"
)

type InquiryRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	EventDate   string `json:"event_date"`
	Headcount   *int   `json:"headcount" binding:"omitempty,min=1"`
	BudgetRange string `json:"budget_range"`
	Message     string `json:"message"`
}

// CreateInquiry stores an event or catering inquiry
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req InquiryRequest
	if !bindJSON(c, &req) {
		return
	}

	inq := models.EventInquiry{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		EventDate:   req.EventDate,
		Headcount:   req.Headcount,
		BudgetRange: req.BudgetRange,
		Message:     req.Message,
		Status:      models.InquiryNew,
	}
	if err := store.Create(c.Request.Context(), h.db, &inq); err != nil {
		internalError(c, err, "Failed to send inquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inquiry_id": inq.ID})
}
