package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"roomassistant/internal/gateway"
	"roomassistant/internal/logging"
	"roomassistant/internal/session"
)

// Service owns sign-in, registration, and sign-out against the backend.
// Every successful exchange that returns a user object overwrites the
// persisted Session wholesale.
type Service struct {
	gw     gateway.Caller
	store  *session.Store
	logger *slog.Logger
}

// NewService constructs an auth service.
func NewService(gw gateway.Caller, store *session.Store, logger *slog.Logger) *Service {
	return &Service{
		gw:     gw,
		store:  store,
		logger: logging.NewComponentLogger(logger, "auth"),
	}
}

// Login exchanges credentials for a user object and persists it.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	env, err := s.gw.Call(ctx, "login", map[string]string{
		"email":    email,
		"password": password,
	}, gateway.MethodPost)
	if err != nil {
		return session.Session{}, err
	}
	if err := env.Err(); err != nil {
		return session.Session{}, err
	}
	return s.adopt(env.User)
}

// Register submits a new account. The backend sends a confirmation mail;
// the returned message is backend prose to show the user verbatim. No
// session is created until the user signs in.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	env, err := s.gw.Call(ctx, "register", map[string]string{
		"email":    email,
		"password": password,
	}, gateway.MethodPost)
	if err != nil {
		return "", err
	}
	if err := env.Err(); err != nil {
		return "", err
	}
	return env.Message, nil
}

// Logout destroys the persisted session.
func (s *Service) Logout() error {
	return s.store.Clear()
}

// GoogleClientID fetches the identity-provider client id. ok is false when
// the backend has none configured or still carries the placeholder value;
// that is not an error, Google sign-in is simply unavailable.
func (s *Service) GoogleClientID(ctx context.Context) (string, bool, error) {
	env, err := s.gw.Call(ctx, "getGoogleClientId", nil, gateway.MethodGet)
	if err != nil {
		return "", false, err
	}
	clientID := strings.TrimSpace(env.ClientID)
	if !env.Success || clientID == "" || strings.Contains(clientID, "YOUR_GOOGLE_CLIENT_ID") {
		s.logger.Debug("google sign-in not configured")
		return "", false, nil
	}
	return clientID, true, nil
}

// GoogleLogin exchanges the identity widget's credential token for a user
// object and persists it.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (session.Session, error) {
	env, err := s.gw.Call(ctx, "googleLogin", map[string]string{
		"idToken": idToken,
	}, gateway.MethodPost)
	if err != nil {
		return session.Session{}, err
	}
	if err := env.Err(); err != nil {
		return session.Session{}, err
	}
	return s.adopt(env.User)
}

func (s *Service) adopt(user *session.Session) (session.Session, error) {
	if user == nil {
		return session.Session{}, errors.New("backend returned no user object")
	}
	if err := s.store.Save(*user); err != nil {
		return session.Session{}, err
	}
	s.logger.Info("signed in",
		logging.String("email", user.Email),
		logging.String("plan", string(user.Plan)))
	return *user, nil
}
