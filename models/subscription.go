package models

import "time"

// Subscription is a customer's active plan as reported by the backend.
type Subscription struct {
	ID                string     `json:"id"`
	PlanName          string     `json:"planName"`
	Status            string     `json:"status"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	CurrentPeriodEnd  *time.Time `json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
}

// Invoice is one past charge on a subscription.
type Invoice struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	PaidAt     time.Time `json:"paidAt"`
	InvoiceURL string    `json:"invoiceUrl,omitempty"`
}
