package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus defines the lifecycle of a verified payment attempt
type PaymentStatus string

const (
	PaymentStatusVerified     PaymentStatus = "VERIFIED"
	PaymentStatusEnrolled     PaymentStatus = "ENROLLED"
	PaymentStatusEnrollFailed PaymentStatus = "ENROLL_FAILED"
	PaymentStatusAbandoned    PaymentStatus = "ABANDONED"
)

// Payment records a gateway callback whose signature checked out. The
// (OrderID, PaymentID) pair is the idempotency key: a retried callback finds
// the existing row instead of enrolling twice.
type Payment struct {
	gorm.Model
	UserID     uint          `gorm:"index;not null" json:"userId"`
	OrderID    string        `gorm:"type:varchar(100);uniqueIndex:idx_order_payment;not null" json:"orderId"`
	PaymentID  string        `gorm:"type:varchar(100);uniqueIndex:idx_order_payment;not null" json:"paymentId"`
	Signature  string        `gorm:"type:varchar(255)" json:"-"`
	Amount     uint          `gorm:"default:0" json:"amount"` // minor units
	Currency   string        `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	CoursesRaw string        `gorm:"type:text" json:"-"` // JSON array of course IDs, kept for reconciliation
	Status     PaymentStatus `gorm:"type:varchar(20);default:'VERIFIED'" json:"status"`
	// Failed enrollment retries so far, across the live path and the
	// reconciler
	EnrollAttempts uint      `gorm:"default:0" json:"-"`
	VerifiedAt     time.Time `json:"verifiedAt"`
	IsDeleted      bool      `gorm:"default:false"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
