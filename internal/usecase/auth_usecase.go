package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/validator"
)

// SessionIssuer signs the session cookie token. An empty email means an
// anonymous session.
type SessionIssuer interface {
	Issue(sessionID string, email string, now time.Time) (token string, expiresAt time.Time, err error)
}

type Clock interface {
	Now() time.Time
}

type AuthValidator interface {
	ValidateLogin(ctx context.Context, form validator.LoginForm) error
	ValidateSignup(ctx context.Context, form validator.SignupForm) error
}

// SessionToken is what the handler puts into the session cookie.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

type AuthOutput struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthUsecase is a mock: there is no user store and any valid form signs the
// shopper in. The cart stays with the session id across login and logout.
type AuthUsecase struct {
	issuer    SessionIssuer
	validator AuthValidator
	clock     Clock
}

// DI
func NewAuthUsecase(issuer SessionIssuer, validator AuthValidator, clock Clock) *AuthUsecase {
	return &AuthUsecase{
		issuer:    issuer,
		validator: validator,
		clock:     clock,
	}
}

func (u *AuthUsecase) Login(ctx context.Context, sessionID string, form validator.LoginForm) (AuthOutput, SessionToken, error) {
	if sessionID == "" {
		return AuthOutput{}, SessionToken{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if err := u.validator.ValidateLogin(ctx, form); err != nil {
		return AuthOutput{}, SessionToken{}, err
	}

	email := strings.TrimSpace(form.Email)
	tok, err := u.issue(sessionID, email)
	if err != nil {
		return AuthOutput{}, SessionToken{}, err
	}
	return AuthOutput{Email: email}, tok, nil
}

func (u *AuthUsecase) Signup(ctx context.Context, sessionID string, form validator.SignupForm) (AuthOutput, SessionToken, error) {
	if sessionID == "" {
		return AuthOutput{}, SessionToken{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if err := u.validator.ValidateSignup(ctx, form); err != nil {
		return AuthOutput{}, SessionToken{}, err
	}

	email := strings.TrimSpace(form.Email)
	tok, err := u.issue(sessionID, email)
	if err != nil {
		return AuthOutput{}, SessionToken{}, err
	}

	name := strings.TrimSpace(form.FirstName) + " " + strings.TrimSpace(form.LastName)
	return AuthOutput{Email: email, Name: name}, tok, nil
}

// Logout keeps the session (and its cart) but drops the email.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) (SessionToken, error) {
	if sessionID == "" {
		return SessionToken{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return u.issue(sessionID, "")
}

func (u *AuthUsecase) issue(sessionID, email string) (SessionToken, error) {
	token, exp, err := u.issuer.Issue(sessionID, email, u.clock.Now())
	if err != nil {
		return SessionToken{}, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return SessionToken{Value: token, ExpiresAt: exp}, nil
}

type FieldPreview struct {
	State validator.FieldState `json:"state"`
	Error string               `json:"error,omitempty"`
}

type RequirementOutput struct {
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

type PasswordStrengthOutput struct {
	Score        int                 `json:"score"`
	Max          int                 `json:"max"`
	Requirements []RequirementOutput `json:"requirements"`
}

type PreviewInput struct {
	Values  map[validator.Field]string `json:"values"`
	Touched []validator.Field          `json:"touched"`
}

type PreviewOutput struct {
	Fields           map[validator.Field]FieldPreview `json:"fields"`
	CanSubmit        bool                             `json:"can_submit"`
	PasswordStrength *PasswordStrengthOutput          `json:"password_strength,omitempty"`
}

// Preview replays the shopper's edits through the form state machine and
// reports what each input should show.
func (u *AuthUsecase) Preview(ctx context.Context, kind string, in PreviewInput) (PreviewOutput, error) {
	form, ok := newForm(kind)
	if !ok {
		return PreviewOutput{}, NewHTTPError(http.StatusBadRequest, "unknown form")
	}

	state := validator.NewFormState(form)
	for f, v := range in.Values {
		if err := state.Change(f, v); err != nil {
			return PreviewOutput{}, previewError(err)
		}
	}
	for _, f := range in.Touched {
		if err := state.Blur(f); err != nil {
			return PreviewOutput{}, previewError(err)
		}
	}

	visible := state.Errors()
	fields := make(map[validator.Field]FieldPreview, len(form.Fields()))
	for _, f := range form.Fields() {
		fields[f] = FieldPreview{State: state.State(f), Error: visible[f]}
	}

	out := PreviewOutput{
		Fields:    fields,
		CanSubmit: state.CanSubmit(),
	}
	if kind == "signup" {
		out.PasswordStrength = passwordStrength(form.Value(validator.FieldPassword))
	}
	return out, nil
}

func newForm(kind string) (validator.Form, bool) {
	switch kind {
	case "login":
		return &validator.LoginForm{}, true
	case "signup":
		return &validator.SignupForm{}, true
	case "payment":
		return &validator.PaymentForm{}, true
	}
	return nil, false
}

func previewError(err error) error {
	if errors.Is(err, validator.ErrUnknownField) {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}

func passwordStrength(password string) *PasswordStrengthOutput {
	reqs := make([]RequirementOutput, 0, len(validator.PasswordRequirements))
	for _, r := range validator.PasswordRequirements {
		reqs = append(reqs, RequirementOutput{Label: r.Label, Met: r.Test(password)})
	}
	return &PasswordStrengthOutput{
		Score:        validator.PasswordStrength(password),
		Max:          len(validator.PasswordRequirements),
		Requirements: reqs,
	}
}
