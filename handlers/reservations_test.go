package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boomiis-api/config"
	"boomiis-api/models"
	"boomiis-api/store"
)

func reservationPayload(date, at string) map[string]any {
	return map[string]any{
		"full_name":  "Tunde Bello",
		"email":      "tunde@example.com",
		"phone":      "+44 7700 900000",
		"date":       date,
		"time":       at,
		"party_size": 4,
	}
}

func TestReservationCapacity(t *testing.T) {
	e := newTestEnv(t, nil)

	for i := 0; i < 20; i++ {
		w := e.do(http.MethodPost, "/api/reservations", reservationPayload("2025-03-01", "19:00"))
		require.Equal(t, http.StatusCreated, w.Code, "booking %d: %s", i+1, w.Body.String())
	}

	w := e.do(http.MethodPost, "/api/reservations", reservationPayload("2025-03-01", "19:00"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Fully booked")

	w = e.do(http.MethodPost, "/api/reservations", reservationPayload("2025-03-01", "19:30"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decode[map[string]string](t, w)["reservation_id"])
}

func TestReservationCapacityIgnoresReleasedBookings(t *testing.T) {
	e := newTestEnv(t, nil, func(c *config.Config) { c.ReservationSlotCapacity = 2 })
	ctx := context.Background()

	for _, status := range []models.ReservationStatus{models.ReservationDeclined, models.ReservationCancelled} {
		require.NoError(t, store.Create(ctx, e.db, &models.Reservation{
			FullName: "x", Email: "x@example.com", Phone: "1",
			Date: "2025-03-01", Time: "19:00", PartySize: 2, Status: status,
		}))
	}

	for i := 0; i < 2; i++ {
		w := e.do(http.MethodPost, "/api/reservations", reservationPayload("2025-03-01", "19:00"))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := e.do(http.MethodPost, "/api/reservations", reservationPayload("2025-03-01", "19:00"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReservationCapacityConcurrent(t *testing.T) {
	const capacity = 5
	e := newTestEnv(t, nil, func(c *config.Config) { c.ReservationSlotCapacity = capacity })

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := e.do(http.MethodPost, "/api/reservations", reservationPayload("2025-03-02", "20:00"))
			if w.Code == http.StatusCreated {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, capacity, created)

	n, err := store.Count[models.Reservation](context.Background(), e.db, store.Filter{"date": "2025-03-02", "time": "20:00"})
	require.NoError(t, err)
	assert.EqualValues(t, capacity, n)
}

func TestReservationValidation(t *testing.T) {
	e := newTestEnv(t, nil)

	tests := []struct {
		name   string
		mutate func(p map[string]any)
	}{
		{"party too large", func(p map[string]any) { p["party_size"] = 21 }},
		{"party empty", func(p map[string]any) { p["party_size"] = 0 }},
		{"bad date", func(p map[string]any) { p["date"] = "tomorrow" }},
		{"bad time", func(p map[string]any) { p["time"] = "7pm" }},
		{"missing phone", func(p map[string]any) { delete(p, "phone") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := reservationPayload("2025-03-01", "19:00")
			tt.mutate(p)
			w := e.do(http.MethodPost, "/api/reservations", p)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		})
	}
}

func TestSlotLocksRelease(t *testing.T) {
	s := newSlotLocks()

	unlock := s.lock("2025-03-01 19:00")
	assert.Len(t, s.locks, 1)
	unlock()
	assert.Empty(t, s.locks)
}

func TestCreateInquiry(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/events/inquiry", map[string]any{
		"full_name":    "Chidi Okeke",
		"email":        "chidi@example.com",
		"event_date":   "2025-08-14",
		"headcount":    60,
		"budget_range": "£1k-£2k",
		"message":      "Wedding buffet",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id := decode[map[string]string](t, w)["inquiry_id"]
	inq, err := store.First[models.EventInquiry](context.Background(), e.db, store.Filter{"id": id})
	require.NoError(t, err)
	assert.Equal(t, models.InquiryNew, inq.Status)
	require.NotNil(t, inq.Headcount)
	assert.Equal(t, 60, *inq.Headcount)

	w = e.do(http.MethodPost, "/api/events/inquiry", map[string]any{"full_name": "No Email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
