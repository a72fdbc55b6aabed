package models

type ReservationStatus string

const (
	ReservationRequested ReservationStatus = "requested"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationDeclined  ReservationStatus = "declined"
	ReservationCancelled ReservationStatus = "cancelled"
)

// HoldingStatuses are the reservation states that occupy a slot.
var HoldingStatuses = []ReservationStatus{ReservationRequested, ReservationConfirmed}

type Reservation struct {
	Record
	FullName  string            `json:"full_name" gorm:"not null"`
	Email     string            `json:"email" gorm:"not null"`
	Phone     string            `json:"phone" gorm:"not null"`
	Date      string            `json:"date" gorm:"size:10;index:idx_reservation_slot;not null"` // YYYY-MM-DD
	Time      string            `json:"time" gorm:"size:5;index:idx_reservation_slot;not null"`  // HH:MM
	PartySize int               `json:"party_size"`
	Notes     string            `json:"notes"`
	Status    ReservationStatus `json:"status" gorm:"size:16;not null"`
}

func (Reservation) TableName() string { return "reservation" }
