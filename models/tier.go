package models

// Well-known tier tags. The backend may add more; the flow only treats
// the emergency-like tag specially as the default.
const (
	TierTagEmergency = "emergency"
	TierTagScheduled = "scheduled"
)

// ServiceTier is one urgency/pricing category offered for the selected
// services.
type ServiceTier struct {
	TierID          int     `json:"tierId"`
	Tag             string  `json:"tag"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     string  `json:"description,omitempty"`
	PayableAmount   float64 `json:"payableAmount"`
	RefundAmount    float64 `json:"refundAmount"`
	IsSchedulable   bool    `json:"isSchedulable"`
	IsDefault       bool    `json:"isDefault,omitempty"`
}
