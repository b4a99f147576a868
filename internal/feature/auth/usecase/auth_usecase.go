package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/feature/auth/domain/entity"
)

// dummyHash is a valid bcrypt digest compared against when the username does
// not exist, so login failures take the same time either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrUsernameTaken or ErrEmailTaken on unique-key conflicts.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a user matching the specified username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateLastSeen sets the user's last-seen timestamp.
	UpdateLastSeen(ctx context.Context, id uint, at time.Time) error
}

// TokenCodec signs and verifies the session cookie value.
type TokenCodec interface {
	// Issue produces a signed token carrying the session ID.
	Issue(sessionID string, expiresAt time.Time) (string, error)

	// Parse verifies a token and returns the session ID it carries.
	Parse(token string) (string, error)
}

// authUsecase implements registration, login and session management.
type authUsecase struct {
	users       UserRepository
	sessions    SessionRepository
	tokens      TokenCodec
	sessionTTL  time.Duration
	rememberTTL time.Duration
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenCodec,
	sessionTTL, rememberTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
// Uniqueness of username and email is enforced by the repository.
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		LastSeen: time.Now().UTC(),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair.
// A bcrypt comparison runs even when the user does not exist, and the same
// ErrInvalidCredentials is returned for unknown-user and wrong-password.
func (u *authUsecase) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.users.FindByUsername(ctx, username)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// StartSession creates a session for the user and returns the signed cookie
// token plus the session it identifies. Remember-me sessions get the longer TTL.
func (u *authUsecase) StartSession(ctx context.Context, user *entity.User, remember bool, userAgent, ip string) (string, *entity.Session, error) {
	ttl := u.sessionTTL
	if remember {
		ttl = u.rememberTTL
	}
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Remember:  remember,
		UserAgent: userAgent,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}
	token, err := u.tokens.Issue(session.ID, session.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, session, nil
}

// Resolve maps a session cookie token to its user.
// Expired and revoked sessions resolve to an error, never to a user.
func (u *authUsecase) Resolve(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
	sessionID, err := u.tokens.Parse(token)
	if err != nil {
		return nil, nil, ErrInvalidSessionToken
	}
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsRevoked() {
		return nil, nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, nil, ErrSessionExpired
	}
	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// EndSession revokes the session carried by the token. An invalid or already
// gone session is not an error: logout is idempotent.
func (u *authUsecase) EndSession(ctx context.Context, token string) error {
	sessionID, err := u.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := u.sessions.Revoke(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// TouchLastSeen records activity for the user (UTC).
func (u *authUsecase) TouchLastSeen(ctx context.Context, userID uint) error {
	return u.users.UpdateLastSeen(ctx, userID, time.Now().UTC())
}
