package backend

import (
	"context"

	"fixora/utils"
)

// authCall posts a body to an auth endpoint and maps success=false to a
// BusinessRuleError carrying the backend's user-facing message.
func (c *Client) authCall(ctx context.Context, op, path string, body any) (*AuthResponse, error) {
	var result AuthResponse
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &utils.BusinessRuleError{Op: op, Message: result.Message}
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return c.authCall(ctx, "login", "/api/auth/login", req)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authCall(ctx, "register", "/api/auth/register", req)
}

// VerifyCode submits the OTP entered against the registration-issued
// verification token.
func (c *Client) VerifyCode(ctx context.Context, verificationToken, code string) (*AuthResponse, error) {
	body := map[string]string{
		"verification_token": verificationToken,
		"code":               code,
	}
	return c.authCall(ctx, "verifyCode", "/api/auth/verify", body)
}

func (c *Client) ResendOTP(ctx context.Context, verificationToken string) (*AuthResponse, error) {
	body := map[string]string{"verification_token": verificationToken}
	return c.authCall(ctx, "resendOtp", "/api/auth/resend-otp", body)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*AuthResponse, error) {
	body := map[string]string{"email": email}
	return c.authCall(ctx, "forgotPassword", "/api/auth/forgot-password", body)
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) (*AuthResponse, error) {
	body := map[string]string{
		"reset_token":  resetToken,
		"new_password": newPassword,
	}
	return c.authCall(ctx, "resetPassword", "/api/auth/reset-password", body)
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) (*AuthResponse, error) {
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return c.authCall(ctx, "changePassword", "/api/auth/change-password", body)
}

func (c *Client) DeleteAccount(ctx context.Context) (*AuthResponse, error) {
	return c.authCall(ctx, "deleteAccount", "/api/auth/delete-account", nil)
}

func (c *Client) Logout(ctx context.Context) error {
	var result envelope
	return c.post(ctx, "/api/auth/logout", nil, &result)
}
