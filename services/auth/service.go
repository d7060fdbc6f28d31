package auth

import (
	"context"
	"fmt"
	"strconv"

	"fixora/backend"
	"fixora/models"
	"fixora/utils"

	"go.uber.org/zap"
)

// Login signs the user in. Already-verified users close the modal and
// trigger the resume path; unverified users are moved to the
// verification sub-view in place.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) error {
	if !s.beginAction("login") {
		return nil
	}
	defer s.endAction("login")

	if email == "" || password == "" {
		return utils.NewValidationError("email", "email and password are required")
	}

	res, err := s.API.Login(ctx, backend.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.Modal.SetError(utils.UserMessage(err))
		return err
	}

	if res.User != nil && !res.User.IsVerified {
		s.Session.SetVerificationPending(res.User, res.VerificationToken)
		s.Modal.SwitchView(ViewVerification)
		s.Resend.Start()
		return nil
	}

	if err := s.Session.SetAuthenticated(res.User, res.Token); err != nil {
		return err
	}
	s.persistSession()
	s.Modal.Close()
	s.resume(ctx)
	return nil
}

// Register creates the account and moves the modal to the verification
// sub-view in place, using the token issued at registration time. No
// full navigation happens here.
func (s *DefaultAuthService) Register(ctx context.Context, req backend.RegisterRequest) error {
	if !s.beginAction("register") {
		return nil
	}
	defer s.endAction("register")

	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Phone == "" {
		return utils.NewValidationError("form", "all fields are required")
	}
	if req.UserType == "" {
		req.UserType = models.UserTypeCustomer
	}

	res, err := s.API.Register(ctx, req)
	if err != nil {
		s.Modal.SetError(utils.UserMessage(err))
		return err
	}

	s.Session.SetVerificationPending(res.User, res.VerificationToken)
	s.Modal.SwitchView(ViewVerification)
	s.Resend.Start()
	return nil
}

// VerifyCode submits the entered code. Success upgrades the session to
// authenticated+verified and then performs the same resume behavior as
// login.
func (s *DefaultAuthService) VerifyCode(ctx context.Context, code string) error {
	if !s.beginAction("verify") {
		return nil
	}
	defer s.endAction("verify")

	if code == "" {
		return utils.NewValidationError("code", "verification code is required")
	}
	session := s.Session.Current()
	if session.VerificationToken == "" {
		return fmt.Errorf("no verification in progress")
	}

	res, err := s.API.VerifyCode(ctx, session.VerificationToken, code)
	if err != nil {
		s.Modal.SetError(utils.UserMessage(err))
		return err
	}

	if err := s.Session.MarkVerified(res.Token); err != nil {
		return err
	}
	s.persistSession()
	s.Modal.Close()
	s.resume(ctx)
	return nil
}

// ResendCode requests a fresh verification code. The control re-disables
// immediately: the countdown re-arms before the request goes out, so a
// second click cannot slip through while the call is in flight.
func (s *DefaultAuthService) ResendCode(ctx context.Context) error {
	if s.Resend.Active() {
		return utils.NewValidationError("code", fmt.Sprintf("please wait %d seconds before resending", s.Resend.Remaining()))
	}
	if !s.resendLimiter.Allow() {
		return nil
	}
	if !s.beginAction("resend") {
		return nil
	}
	defer s.endAction("resend")

	session := s.Session.Current()
	if session.VerificationToken == "" {
		return fmt.Errorf("no verification in progress")
	}

	s.Resend.Start()
	if _, err := s.API.ResendOTP(ctx, session.VerificationToken); err != nil {
		s.Modal.SetError(utils.UserMessage(err))
		return err
	}
	return nil
}

// ForgotPassword asks the backend to mail a reset link/token.
func (s *DefaultAuthService) ForgotPassword(ctx context.Context, email string) error {
	if !s.beginAction("forgotPassword") {
		return nil
	}
	defer s.endAction("forgotPassword")

	if email == "" {
		return utils.NewValidationError("email", "email is required")
	}
	if _, err := s.API.ForgotPassword(ctx, email); err != nil {
		s.Modal.SetError(utils.UserMessage(err))
		return err
	}
	return nil
}

// ResetPassword completes the forgot-password flow with the emailed
// token.
func (s *DefaultAuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if !s.beginAction("resetPassword") {
		return nil
	}
	defer s.endAction("resetPassword")

	if resetToken == "" || newPassword == "" {
		return utils.NewValidationError("password", "reset token and new password are required")
	}
	if _, err := s.API.ResetPassword(ctx, resetToken, newPassword); err != nil {
		s.Modal.SetError(utils.UserMessage(err))
		return err
	}
	return nil
}

// Logout clears the session. The backend call is best effort: local
// teardown happens regardless.
func (s *DefaultAuthService) Logout(ctx context.Context) error {
	if err := s.API.Logout(ctx); err != nil {
		utils.GetLogger().Warn("Backend logout failed", zap.Error(err))
	}
	s.Session.Clear()
	if err := s.Store.ClearSession(); err != nil {
		utils.GetLogger().Warn("Failed to clear persisted session", zap.Error(err))
	}
	return nil
}

// persistSession mirrors the signed-in state to the draft store so a
// restart can pick it back up.
func (s *DefaultAuthService) persistSession() {
	if err := s.Store.SaveSession(s.Session.Current()); err != nil {
		utils.GetLogger().Warn("Failed to persist auth session", zap.Error(err))
	}
}

// RestoreSession rehydrates the session from the draft store at startup.
// A stored session is only trusted when its token still verifies: an
// expired token, or one whose subject no longer matches the stored user,
// is discarded along with the record. Returns whether a session was
// restored.
func (s *DefaultAuthService) RestoreSession() bool {
	stored, err := s.Store.ReadSession()
	if err != nil {
		utils.GetLogger().Warn("Failed to read persisted session", zap.Error(err))
		return false
	}
	if stored == nil || stored.Token == "" {
		return false
	}

	discard := func(reason string) bool {
		utils.GetLogger().Info("Discarding persisted session", zap.String("reason", reason))
		if err := s.Store.ClearSession(); err != nil {
			utils.GetLogger().Warn("Failed to clear persisted session", zap.Error(err))
		}
		return false
	}

	if utils.TokenExpired(stored.Token) {
		return discard("token expired")
	}
	if stored.User != nil {
		id, err := utils.ExtractIDFromToken(stored.Token)
		if err != nil || id != strconv.Itoa(stored.User.ID) {
			return discard("token subject mismatch")
		}
	}

	if err := s.Session.Restore(*stored); err != nil {
		return discard("invalid stored state")
	}
	return true
}
