package paymentController

// CaptureRequest is the order-capture payload
type CaptureRequest struct {
	CourseID uint `json:"course_id" validate:"required,gt=0"`
}

// VerifyRequest is the Razorpay callback payload
type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
	Courses   []uint `json:"courses" validate:"required,min=1,dive,gt=0"`
}

// SuccessEmailRequest is the payment receipt email payload
type SuccessEmailRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Amount    uint   `json:"amount" validate:"required,gt=0"` // minor units
}
