package storage

import "fixora/models"

// DraftStore persists the minimum data needed to resume a booking across
// an authentication interruption or a page refresh.
//
// SaveDraft merges set fields into the existing record, last writer wins
// per key. ReadDraft returns an empty record when nothing is stored.
// The pending booking is the full resume context written when the auth
// gate suspends a flow; it survives reloads and is cleared exactly once,
// right after a successful resume-and-continue.
type DraftStore interface {
	SaveDraft(partial models.SessionDraftRecord) error
	ReadDraft() (models.SessionDraftRecord, error)
	ClearDraft() error

	SavePending(pending models.PendingBooking) error
	ReadPending() (*models.PendingBooking, error)
	ClearPending() error

	// Completed auth session, persisted so a restart can restore the
	// signed-in state. Restore validates the token before reuse.
	SaveSession(session models.AuthSession) error
	ReadSession() (*models.AuthSession, error)
	ClearSession() error

	// Local request snapshot feeding the tracker's degraded mode.
	CacheRequests(items []models.RequestItem) error
	CachedRequests() ([]models.RequestItem, error)
}
