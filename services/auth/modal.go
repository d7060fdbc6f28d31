package auth

import "sync"

// ModalView identifies one of the auth modal's sub-views.
type ModalView string

const (
	ViewSignIn         ModalView = "sign-in"
	ViewSignUp         ModalView = "sign-up"
	ViewForgotPassword ModalView = "forgot-password"
	ViewVerification   ModalView = "verification"
)

// SignInForm is the sign-in sub-view's local state.
type SignInForm struct {
	Email        string
	Password     string
	ShowPassword bool
}

// SignUpForm is the sign-up sub-view's local state.
type SignUpForm struct {
	FullName     string
	Email        string
	Phone        string
	Password     string
	ShowPassword bool
}

// ForgotPasswordForm is the forgot-password sub-view's local state.
type ForgotPasswordForm struct {
	Email string
}

// VerificationForm is the verification sub-view's local state.
type VerificationForm struct {
	Code string
}

// ModalState is the auth modal: four self-contained sub-views, each
// with independent local state. Switching sub-views never loses data
// already entered in a different sub-view.
type ModalState struct {
	mu sync.Mutex

	open bool
	view ModalView

	signIn   SignInForm
	signUp   SignUpForm
	forgot   ForgotPasswordForm
	verify   VerificationForm
	errorMsg string
}

func NewModalState() *ModalState {
	return &ModalState{view: ViewSignIn}
}

// Open shows the modal at the sign-in sub-view.
func (m *ModalState) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	m.view = ViewSignIn
}

// IsOpen reports whether the modal is showing.
func (m *ModalState) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// View returns the active sub-view.
func (m *ModalState) View() ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// SwitchView moves between sub-views in place, preserving every
// sub-view's entered data.
func (m *ModalState) SwitchView(v ModalView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = v
	m.errorMsg = ""
}

// Close dismisses the modal without completing auth: the sub-view
// resets to sign-in and transient visibility toggles clear. The
// persisted pending draft is NOT touched — the user may reopen and
// retry.
func (m *ModalState) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.view = ViewSignIn
	m.signIn.ShowPassword = false
	m.signUp.ShowPassword = false
	m.errorMsg = ""
}

// SetError records a user-facing message shown inside the modal.
func (m *ModalState) SetError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorMsg = msg
}

// Error returns the current user-facing message.
func (m *ModalState) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorMsg
}

// Form accessors return copies; updates go through the setters so the
// mutex always guards the state.

func (m *ModalState) SignIn() SignInForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signIn
}

func (m *ModalState) SetSignIn(f SignInForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signIn = f
}

func (m *ModalState) SignUp() SignUpForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signUp
}

func (m *ModalState) SetSignUp(f SignUpForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signUp = f
}

func (m *ModalState) ForgotPassword() ForgotPasswordForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forgot
}

func (m *ModalState) SetForgotPassword(f ForgotPasswordForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forgot = f
}

func (m *ModalState) Verification() VerificationForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verify
}

func (m *ModalState) SetVerification(f VerificationForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verify = f
}
