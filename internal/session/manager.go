// Package session owns authentication and the cached user profile. It speaks
// to the user table through UserStore and keeps live sessions in a TokenStore
// keyed by opaque bearer tokens.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

const confirmTokenTTL = 24 * time.Hour

// UserStore is the slice of the user repository the manager needs.
type UserStore interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	EmailExists(email string) (bool, error)
	UpdateMetadata(id, metadata string) error
	MarkEmailConfirmed(id string) error
}

// TokenStore holds session snapshots and pending email-confirmation tokens.
type TokenStore interface {
	Save(ctx context.Context, token string, profile model.UserProfile, ttl time.Duration) error
	Get(ctx context.Context, token string) (*model.UserProfile, error)
	Delete(ctx context.Context, token string) error
	SaveConfirmToken(ctx context.Context, token, userID string, ttl time.Duration) error
	TakeConfirmToken(ctx context.Context, token string) (string, error)
}

// Mailer sends the sign-up confirmation message.
type Mailer interface {
	SendConfirmation(ctx context.Context, toEmail, confirmURL string) error
}

type Manager struct {
	users  UserStore
	tokens TokenStore
	mailer Mailer
	cfg    *config.AuthConfig

	mu     sync.Mutex
	themes map[string]Theme
}

func NewManager(users UserStore, tokens TokenStore, mailer Mailer, cfg *config.AuthConfig) *Manager {
	return &Manager{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		themes: make(map[string]Theme),
	}
}

// SignUp registers a new user. With email confirmation enabled the returned
// token is empty and the caller must show the check-your-email state; the
// profile is returned in both shapes.
func (m *Manager) SignUp(ctx context.Context, email, password, fullName string) (*model.UserProfile, string, error) {
	exists, err := m.users.EmailExists(email)
	if err != nil {
		return nil, "", util.NewPersistenceError("signUp", err)
	}
	if exists {
		return nil, "", util.NewAuthError("User already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", util.NewPersistenceError("signUp", err)
	}

	metadata, _ := json.Marshal(map[string]string{"full_name": fullName})
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Metadata:     string(metadata),
	}

	if !m.cfg.RequireEmailConfirm {
		now := time.Now()
		user.EmailConfirmedAt = &now
	}

	if err := m.users.Create(user); err != nil {
		// Concurrent sign-ups can slip past the EmailExists check; the
		// unique index catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", util.NewAuthError("User already registered")
		}
		return nil, "", util.NewPersistenceError("signUp", err)
	}

	profile := m.profileFor(user)

	if m.cfg.RequireEmailConfirm {
		confirmToken := uuid.NewString()
		if err := m.tokens.SaveConfirmToken(ctx, confirmToken, user.ID.String(), confirmTokenTTL); err != nil {
			log.Printf("[session] save confirm token for %s: %v", email, err)
		} else if err := m.mailer.SendConfirmation(ctx, email, confirmToken); err != nil {
			// Mail failures don't fail registration.
			log.Printf("[session] confirmation mail to %s: %v", email, err)
		}
		return &profile, "", nil
	}

	token, err := m.issueSession(ctx, profile)
	if err != nil {
		return nil, "", err
	}
	return &profile, token, nil
}

// SignIn verifies the password and returns a fresh session token.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*model.UserProfile, string, error) {
	user, err := m.users.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.NewAuthError("Invalid login credentials")
	}
	if err != nil {
		return nil, "", util.NewPersistenceError("signIn", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", util.NewAuthError("Invalid login credentials")
	}
	if m.cfg.RequireEmailConfirm && user.EmailConfirmedAt == nil {
		return nil, "", util.NewAuthError("Email not confirmed")
	}

	profile := m.profileFor(user)
	token, err := m.issueSession(ctx, profile)
	if err != nil {
		return nil, "", err
	}
	return &profile, token, nil
}

// CheckSession resolves a token to its cached profile. (nil, nil) means no
// active session. A store failure is logged and returned so the caller can
// keep its prior state instead of treating the user as signed out.
func (m *Manager) CheckSession(ctx context.Context, token string) (*model.UserProfile, error) {
	if token == "" {
		return nil, nil
	}
	profile, err := m.tokens.Get(ctx, token)
	if err != nil {
		log.Printf("[session] session check failed: %v", err)
		return nil, err
	}
	return profile, nil
}

// SignOut drops the session. The token is cleared unconditionally; a store
// error is logged, never surfaced.
func (m *Manager) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := m.tokens.Delete(ctx, token); err != nil {
		log.Printf("[session] sign out: %v", err)
	}
}

// UpdateProfile sets the full name in the user's metadata document and
// refreshes the cached session snapshot.
func (m *Manager) UpdateProfile(ctx context.Context, token, fullName string) (*model.UserProfile, error) {
	profile, err := m.CheckSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, util.NewAuthError("Not signed in")
	}

	user, err := m.users.FindByID(profile.ID)
	if err != nil {
		return nil, util.NewPersistenceError("updateProfile", err)
	}

	meta := map[string]string{"full_name": fullName}
	if avatar := gjson.Get(user.Metadata, "avatar_url").String(); avatar != "" {
		meta["avatar_url"] = avatar
	}
	raw, _ := json.Marshal(meta)
	if err := m.users.UpdateMetadata(user.ID.String(), string(raw)); err != nil {
		return nil, util.NewPersistenceError("updateProfile", err)
	}

	user.Metadata = string(raw)
	updated := m.profileFor(user)
	if err := m.tokens.Save(ctx, token, updated, m.cfg.SessionTTL); err != nil {
		log.Printf("[session] refresh snapshot: %v", err)
	}
	return &updated, nil
}

// ConfirmEmail redeems a confirmation token from the sign-up mail.
func (m *Manager) ConfirmEmail(ctx context.Context, confirmToken string) error {
	userID, err := m.tokens.TakeConfirmToken(ctx, confirmToken)
	if err != nil {
		return err
	}
	if userID == "" {
		return util.NewAuthError("Invalid or expired confirmation link")
	}
	if err := m.users.MarkEmailConfirmed(userID); err != nil {
		return util.NewPersistenceError("confirmEmail", err)
	}
	return nil
}

func (m *Manager) issueSession(ctx context.Context, profile model.UserProfile) (string, error) {
	token := uuid.NewString()
	if err := m.tokens.Save(ctx, token, profile, m.cfg.SessionTTL); err != nil {
		return "", util.NewPersistenceError("issueSession", err)
	}
	return token, nil
}

// profileFor builds the read-only cached profile from the user row. Display
// name and avatar live in the metadata JSON document.
func (m *Manager) profileFor(user *model.User) model.UserProfile {
	return model.UserProfile{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  gjson.Get(user.Metadata, "full_name").String(),
		AvatarURL: gjson.Get(user.Metadata, "avatar_url").String(),
	}
}
