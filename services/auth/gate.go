package auth

import (
	"context"

	"fixora/models"
	"fixora/utils"

	"go.uber.org/zap"
)

// CheckAndGate is the authentication gate. The pass-through case is
// synchronous: no modal, no network. The suspend case persists the
// pending context before opening the modal so the booking survives a
// full page reload, then reports ErrAuthRequired — a branch, not a
// failure.
func (s *DefaultAuthService) CheckAndGate(ctx context.Context, pending models.PendingBooking, next func(context.Context) error) error {
	session := s.Session.Current()
	if session.IsCustomer() {
		return next(ctx)
	}

	if err := s.Store.SavePending(pending); err != nil {
		return err
	}

	// Mirror any partial selection to the server so a login on another
	// device can pick the booking up too.
	record := models.RecordFromDraft(pending.Draft)
	if !record.IsEmpty() {
		if err := s.API.StoreSessionData(ctx, record); err != nil {
			utils.GetLogger().Warn("Failed to mirror pending draft before gate suspension", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.resumeArmed = true
	s.mu.Unlock()

	s.Modal.Open()
	return utils.ErrAuthRequired
}

// resume runs the registered continuation exactly once per successful
// post-suspension authentication. It reads the pending draft only after
// the auth state has flipped — the caller is the auth success path, not
// a timer — re-issues one storeSessionData for it, invokes the
// continuation, and clears the pending record.
func (s *DefaultAuthService) resume(ctx context.Context) {
	// The gate only admits customers, so only a customer login may run
	// the continuation. Leaving the arm set keeps the pending booking
	// alive for a later customer sign-in.
	session := s.Session.Current()
	if !session.IsCustomer() {
		return
	}

	s.mu.Lock()
	armed := s.resumeArmed
	s.resumeArmed = false
	fn := s.onResume
	s.mu.Unlock()
	if !armed {
		return
	}

	pending, err := s.Store.ReadPending()
	if err != nil {
		utils.GetLogger().Error("Failed to read pending booking on resume", zap.Error(err))
		return
	}
	if pending == nil {
		return
	}

	record := models.RecordFromDraft(pending.Draft)
	if !record.IsEmpty() {
		if err := s.API.StoreSessionData(ctx, record); err != nil {
			utils.GetLogger().Warn("Failed to re-store session data on resume", zap.Error(err))
		}
	}

	if fn != nil {
		if err := fn(ctx, *pending); err != nil {
			utils.GetLogger().Error("Booking continuation failed", zap.Error(err))
			return
		}
	}

	// Cleared exactly once, only after a successful resume-and-continue,
	// so a stale draft never replays into a later unrelated booking.
	if err := s.Store.ClearPending(); err != nil {
		utils.GetLogger().Warn("Failed to clear pending booking", zap.Error(err))
	}
}
