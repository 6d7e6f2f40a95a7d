package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

// ── in-memory fakes ────────────────────────────────────────────────────────

type fakeUserStore struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User

	// staleExists makes EmailExists answer false even for known emails,
	// simulating a concurrent sign-up that lands between the check and
	// the insert.
	staleExists bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}, byID: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByID(id string) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) EmailExists(email string) (bool, error) {
	if f.staleExists {
		return false, nil
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserStore) UpdateMetadata(id, metadata string) error {
	f.byID[id].Metadata = metadata
	return nil
}

func (f *fakeUserStore) MarkEmailConfirmed(id string) error {
	now := time.Now()
	f.byID[id].EmailConfirmedAt = &now
	return nil
}

type fakeTokenStore struct {
	sessions map[string]model.UserProfile
	confirms map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{sessions: map[string]model.UserProfile{}, confirms: map[string]string{}}
}

func (f *fakeTokenStore) Save(_ context.Context, token string, profile model.UserProfile, _ time.Duration) error {
	f.sessions[token] = profile
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, token string) (*model.UserProfile, error) {
	if p, ok := f.sessions[token]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeTokenStore) SaveConfirmToken(_ context.Context, token, userID string, _ time.Duration) error {
	f.confirms[token] = userID
	return nil
}

func (f *fakeTokenStore) TakeConfirmToken(_ context.Context, token string) (string, error) {
	userID := f.confirms[token]
	delete(f.confirms, token)
	return userID, nil
}

type fakeMailer struct {
	sentTo []string
}

func (f *fakeMailer) SendConfirmation(_ context.Context, toEmail, _ string) error {
	f.sentTo = append(f.sentTo, toEmail)
	return nil
}

func newManager(requireConfirm bool) (*session.Manager, *fakeTokenStore, *fakeMailer) {
	tokens := newFakeTokenStore()
	mailer := &fakeMailer{}
	cfg := &config.AuthConfig{SessionTTL: time.Hour, RequireEmailConfirm: requireConfirm}
	return session.NewManager(newFakeUserStore(), tokens, mailer, cfg), tokens, mailer
}

// ── tests ──────────────────────────────────────────────────────────────────

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(false)

	profile, token, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana Silva")
	require.NoError(t, err)
	assert.NotEmpty(t, token, "confirmation disabled should log the user in immediately")
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "Ana Silva", profile.FullName)

	again, token2, err := m.SignIn(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token2)
	assert.Equal(t, profile.ID, again.ID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(false)

	_, _, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	_, _, err = m.SignUp(ctx, "ana@example.com", "other", "Ana Again")
	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "User already registered", authErr.Message)
}

func TestSignUp_DuplicateEmailRace(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	cfg := &config.AuthConfig{SessionTTL: time.Hour}
	m := session.NewManager(users, newFakeTokenStore(), &fakeMailer{}, cfg)

	_, _, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	// The exists check missed the concurrent insert; the unique index
	// rejects the second row and the caller still sees the auth message.
	users.staleExists = true
	_, _, err = m.SignUp(ctx, "ana@example.com", "other", "Ana Again")
	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "User already registered", authErr.Message)
}

func TestSignUp_ConfirmationPending(t *testing.T) {
	ctx := context.Background()
	m, _, mailer := newManager(true)

	profile, token, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Empty(t, token, "no session until the email is confirmed")
	assert.Equal(t, []string{"ana@example.com"}, mailer.sentTo)

	// Sign-in is rejected until confirmation.
	_, _, err = m.SignIn(ctx, "ana@example.com", "hunter22")
	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Email not confirmed", authErr.Message)
}

func TestConfirmEmailEnablesSignIn(t *testing.T) {
	ctx := context.Background()
	m, tokens, _ := newManager(true)

	_, _, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	var confirmToken string
	for tok := range tokens.confirms {
		confirmToken = tok
	}
	require.NotEmpty(t, confirmToken)
	require.NoError(t, m.ConfirmEmail(ctx, confirmToken))

	_, token, err := m.SignIn(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestSignIn_WrongPassword(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(false)

	_, _, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	_, _, err = m.SignIn(ctx, "ana@example.com", "wrong")
	var authErr *util.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid login credentials", authErr.Message)

	_, _, err = m.SignIn(ctx, "nobody@example.com", "hunter22")
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid login credentials", authErr.Message)
}

func TestCheckSessionAndSignOut(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(false)

	profile, token, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	got, err := m.CheckSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile.ID, got.ID)

	// Empty and unknown tokens resolve to no session, not an error.
	got, err = m.CheckSession(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	m.SignOut(ctx, token)
	got, err = m.CheckSession(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(false)

	_, token, err := m.SignUp(ctx, "ana@example.com", "hunter22", "Ana")
	require.NoError(t, err)

	updated, err := m.UpdateProfile(ctx, token, "Ana S. Silva")
	require.NoError(t, err)
	assert.Equal(t, "Ana S. Silva", updated.FullName)

	// The cached snapshot is refreshed too.
	got, err := m.CheckSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Ana S. Silva", got.FullName)
}

func TestThemeToggle(t *testing.T) {
	m, _, _ := newManager(false)

	assert.Equal(t, session.ThemeDark, m.Theme("user-1"), "default is dark")
	assert.Equal(t, session.ThemeLight, m.ToggleTheme("user-1"))
	assert.Equal(t, session.ThemeLight, m.Theme("user-1"))
	assert.Equal(t, session.ThemeDark, m.ToggleTheme("user-1"))
	assert.Equal(t, session.ThemeDark, m.Theme("user-2"), "preference is per user")
}
