package models

import "time"

// RequestStatus is the server-authoritative lifecycle state of a
// submitted booking. The client never mutates it directly except via
// explicit cancel/resend calls.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusOnHold    RequestStatus = "on_hold"
	StatusInProcess RequestStatus = "in_process"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

// RequestItem is the durable record of a submitted booking. Created
// server-side on submission; the client holds a read-only projection.
type RequestItem struct {
	ID             int           `json:"id"`
	RequestNumber  string        `json:"requestNumber"`
	Category       string        `json:"category"`
	Service        string        `json:"service"`
	Status         RequestStatus `json:"status"`
	ScheduleTime   *time.Time    `json:"scheduleTime,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	Address        Address       `json:"address"`
	ServiceTierTag string        `json:"serviceTierTag,omitempty"`
}

// StatusCounts holds per-status totals across ALL statuses, regardless
// of the active list filter, so badge counts stay accurate.
type StatusCounts map[RequestStatus]int
