package models

import "time"

// Timing modes for a service request.
const (
	TimingEmergency = "emergency"
	TimingSchedule  = "schedule"
)

// Timing says when the service is wanted: right now, or at a scheduled
// future time.
type Timing struct {
	Mode       string     `json:"mode"`
	ScheduleAt *time.Time `json:"scheduleAt,omitempty"`
}

// Provider is one eligible provider in a ranked search result.
type Provider struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Image           string  `json:"image,omitempty"`
	AvgRating       float64 `json:"avgRating"`
	DistanceFromZip float64 `json:"distanceFromZip"`
	BioSnippet      string  `json:"bioSnippet,omitempty"`
	YearsExperience int     `json:"yearsExperience"`
	TierLabel       string  `json:"tierLabel,omitempty"`
}
