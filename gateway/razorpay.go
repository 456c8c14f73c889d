package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// OrdersURL is a var so tests can point it at a local server
var OrdersURL = "https://api.razorpay.com/v1/orders"

// Order is the subset of the Razorpay order entity we consume
type Order struct {
	ID       string `json:"id"`
	Amount   uint   `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a payment order on Razorpay. Amount is in minor
// currency units (paise for INR). Notes travel opaquely to the gateway and
// come back on the webhook, so course/user IDs go there for correlation.
func CreateOrder(amount uint, currency, receipt string, notes map[string]string) (*Order, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpaySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":          amount,
			"currency":        currency,
			"receipt":         receipt,
			"notes":           notes,
			"payment_capture": 1,
		}).
		Post(OrdersURL)
	if err != nil {
		log.Printf("Failed to create Razorpay order: %v", err)
		return nil, err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Razorpay order create failed: %s", resp.String())
		return nil, fmt.Errorf("razorpay order create failed with status %d", resp.StatusCode())
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("invalid razorpay response: %w", err)
	}

	return &order, nil
}

// ComputeSignature returns hex(HMAC-SHA256(secret, orderID + "|" + paymentID)),
// the scheme Razorpay signs payment callbacks with
func ComputeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the callback signature in constant time
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := ComputeSignature(secret, orderID, paymentID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
