package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"boomiis-api/models"
	"boomiis-api/store"
)

var errSlotFull = errors.New("slot fully booked")

type ReservationRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
	PartySize int    `json:"party_size" binding:"required,min=1,max=20"`
	Notes     string `json:"notes"`
}

// slotLocks serializes capacity checks per reservation slot.
type slotLocks struct {
	mu    sync.Mutex
	locks map[string]*slotLock
}

type slotLock struct {
	sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{locks: make(map[string]*slotLock)}
}

// lock acquires the slot and returns its release func.
func (s *slotLocks) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &slotLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// CreateReservation books a table unless the slot already holds capacity bookings.
// Capacity counts bookings, not seats.
func (h *Handler) CreateReservation(c *gin.Context) {
	ctx := c.Request.Context()

	var req ReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	res := models.Reservation{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		PartySize: req.PartySize,
		Notes:     req.Notes,
		Status:    models.ReservationRequested,
	}

	unlock := h.slots.lock(req.Date + " " + req.Time)
	defer unlock()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		held, err := store.Count[models.Reservation](ctx, tx, store.Filter{
			"date":   req.Date,
			"time":   req.Time,
			"status": models.HoldingStatuses,
		})
		if err != nil {
			return err
		}
		if held >= int64(h.cfg.ReservationSlotCapacity) {
			return errSlotFull
		}
		return store.Create(ctx, tx, &res)
	})
	if errors.Is(err, errSlotFull) {
		c.JSON(http.StatusConflict, gin.H{"error": "Fully booked for this time slot"})
		return
	}
	if err != nil {
		internalError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservation_id": res.ID})
}
