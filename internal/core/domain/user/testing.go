package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
	c "useradmin/internal/core/domain/common"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:                     maxID + 1,
		Username:               input.Username,
		Email:                  input.Email,
		PrivacyPolicyAccepted:  input.PrivacyPolicyAccepted,
		Role:                   input.Role,
		CompanyID:              input.CompanyID,
		SetPasswordToken:       input.SetPasswordToken,
		SetPasswordTokenExpiry: input.SetPasswordTokenExpiry,
		CreatedAt:              input.CreatedAt,
		UpdatedAt:              input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Username == identifier || string(u.Email) == identifier {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) List(ctx context.Context) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, len(r.Users))
	copy(users, r.Users)
	return users, nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == input.ID {
			continue
		}
		if input.DoEmailUpdate && u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	for ix, u := range r.Users {
		if u.ID != input.ID {
			continue
		}
		if input.DoEmailUpdate {
			r.Users[ix].Email = input.Email
		}
		if input.DoRoleUpdate {
			r.Users[ix].Role = input.Role
		}
		if input.DoCompanyIDUpdate {
			r.Users[ix].CompanyID = input.CompanyID
		}
		if input.DoPrivacyPolicyUpdate {
			r.Users[ix].PrivacyPolicyAccepted = input.PrivacyPolicyAccepted
		}
		if input.DoPasswordHashUpdate {
			r.Users[ix].PasswordHash = c.NewOptional(input.PasswordHash, true)
			r.Users[ix].SetPasswordToken = c.NewOptional(SetPasswordToken(""), false)
			r.Users[ix].SetPasswordTokenExpiry = c.NewOptional(time.Time{}, false)
		}
		r.Users[ix].UpdatedAt = input.At
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:ix], r.Users[ix+1:]...)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetBySetPasswordToken(ctx context.Context, token SetPasswordToken) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.SetPasswordToken.IsPresent && u.SetPasswordToken.Value == token {
			return u, nil
		}
	}
	return u, ErrTokenDoesNotExist
}

func (r *FakeUserRepository) ConsumeSetPasswordToken(
	ctx context.Context,
	input ConsumeSetPasswordTokenInput,
) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if !u.SetPasswordToken.IsPresent || u.SetPasswordToken.Value != input.Token {
			continue
		}
		r.Users[ix].PasswordHash = c.NewOptional(input.PasswordHash, true)
		r.Users[ix].SetPasswordToken = c.NewOptional(SetPasswordToken(""), false)
		r.Users[ix].SetPasswordTokenExpiry = c.NewOptional(time.Time{}, false)
		r.Users[ix].IsEmailVerified = true
		r.Users[ix].UpdatedAt = input.At
		return r.Users[ix], nil
	}
	return u, ErrTokenDoesNotExist
}

func (r *FakeUserRepository) ClearSetPasswordToken(ctx context.Context, token SetPasswordToken, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.SetPasswordToken.IsPresent && u.SetPasswordToken.Value == token {
			r.Users[ix].SetPasswordToken = c.NewOptional(SetPasswordToken(""), false)
			r.Users[ix].SetPasswordTokenExpiry = c.NewOptional(time.Time{}, false)
			r.Users[ix].UpdatedAt = at
			return nil
		}
	}
	return ErrTokenDoesNotExist
}

func (r *FakeUserRepository) SetResetPasswordToken(
	ctx context.Context,
	input SetResetPasswordTokenInput,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not set reset-password token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.ID {
			r.Users[ix].ResetPasswordToken = c.NewOptional(input.Token, true)
			r.Users[ix].ResetPasswordTokenExpiry = c.NewOptional(input.ExpiresAt, true)
			r.Users[ix].UpdatedAt = input.At
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByResetPasswordToken(
	ctx context.Context,
	token ResetPasswordToken,
) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ResetPasswordToken.IsPresent && u.ResetPasswordToken.Value == token {
			return u, nil
		}
	}
	return u, ErrTokenDoesNotExist
}

func (r *FakeUserRepository) ConsumeResetPasswordToken(
	ctx context.Context,
	input ConsumeResetPasswordTokenInput,
) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if !u.ResetPasswordToken.IsPresent || u.ResetPasswordToken.Value != input.Token {
			continue
		}
		r.Users[ix].PasswordHash = c.NewOptional(input.PasswordHash, true)
		r.Users[ix].ResetPasswordToken = c.NewOptional(ResetPasswordToken(""), false)
		r.Users[ix].ResetPasswordTokenExpiry = c.NewOptional(time.Time{}, false)
		r.Users[ix].UpdatedAt = input.At
		return r.Users[ix], nil
	}
	return u, ErrTokenDoesNotExist
}

func (r *FakeUserRepository) ClearResetPasswordToken(
	ctx context.Context,
	token ResetPasswordToken,
	at time.Time,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ResetPasswordToken.IsPresent && u.ResetPasswordToken.Value == token {
			r.Users[ix].ResetPasswordToken = c.NewOptional(ResetPasswordToken(""), false)
			r.Users[ix].ResetPasswordTokenExpiry = c.NewOptional(time.Time{}, false)
			r.Users[ix].UpdatedAt = at
			return nil
		}
	}
	return ErrTokenDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrSessionDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSetPasswordTokenGenerator struct {
	Token SetPasswordToken
}

func NewFakeSetPasswordTokenGenerator(token string) *FakeSetPasswordTokenGenerator {
	return &FakeSetPasswordTokenGenerator{Token: SetPasswordToken(token)}
}

func (g *FakeSetPasswordTokenGenerator) GenerateSetPasswordToken() SetPasswordToken {
	return g.Token
}

type FakeResetPasswordTokenGenerator struct {
	Token ResetPasswordToken
}

func NewFakeResetPasswordTokenGenerator(token string) *FakeResetPasswordTokenGenerator {
	return &FakeResetPasswordTokenGenerator{Token: ResetPasswordToken(token)}
}

func (g *FakeResetPasswordTokenGenerator) GenerateResetPasswordToken() ResetPasswordToken {
	return g.Token
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeSetPasswordTokenSender struct {
	Sent        []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeSetPasswordTokenSender() *FakeSetPasswordTokenSender {
	return &FakeSetPasswordTokenSender{}
}

func (s *FakeSetPasswordTokenSender) SendSetPasswordToken(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send set-password token for user %v", user)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, user)
	return nil
}

func (s *FakeSetPasswordTokenSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakeSetPasswordTokenSender) LastSentTo() User {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakePasswordResetTokenSender struct {
	Sent        []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token for user %v", user)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, user)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	return len(s.Sent)
}
