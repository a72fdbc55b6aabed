package models

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryInReview  InquiryStatus = "in_review"
	InquiryResponded InquiryStatus = "responded"
	InquiryClosed    InquiryStatus = "closed"
)

// EventInquiry is an event or catering request sent from the website
type EventInquiry struct {
	Record
	FullName    string        `json:"full_name" gorm:"not null"`
	Email       string        `json:"email" gorm:"not null"`
	Phone       string        `json:"phone"`
	EventDate   string        `json:"event_date"`
	Headcount   *int          `json:"headcount"`
	BudgetRange string        `json:"budget_range"`
	Message     string        `json:"message"`
	Status      InquiryStatus `json:"status" gorm:"size:16;not null"`
}

func (EventInquiry) TableName() string { return "eventinquiry" }
