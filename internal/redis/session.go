package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	e "useradmin/internal/core/domain/errors"
	"useradmin/internal/core/domain/user"

	"github.com/go-redis/redis/v9"
)

const sessionKeyPrefix = "session::"

// SessionRepository keeps session tokens in Redis so they expire on
// their own and survive restarts of the API process.
type SessionRepository struct {
	redisClient *redis.Client
	users       user.UserRepository
	ttl         time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	users user.UserRepository,
	ttl time.Duration,
) *SessionRepository {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if users == nil {
		panic(e.NewNilArgumentError("users"))
	}
	return &SessionRepository{redisClient: redisClient, users: users, ttl: ttl}
}

func (r *SessionRepository) Create(ctx context.Context, input user.CreateSessionInput) error {
	return r.redisClient.Set(
		ctx,
		sessionKeyPrefix+string(input.Token),
		strconv.FormatInt(int64(input.UserID), 10),
		r.ttl,
	).Err()
}

func (r *SessionRepository) GetUserByToken(ctx context.Context, token user.SessionToken) (user.User, error) {
	userID, err := r.userID(ctx, token)
	if err != nil {
		return user.User{}, err
	}
	u, err := r.users.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return user.User{}, user.ErrSessionDoesNotExist
	}
	return u, err
}

func (r *SessionRepository) Delete(ctx context.Context, token user.SessionToken) (user.ID, error) {
	userID, err := r.userID(ctx, token)
	if err != nil {
		return 0, err
	}
	if err := r.redisClient.Del(ctx, sessionKeyPrefix+string(token)).Err(); err != nil {
		return 0, err
	}
	return userID, nil
}

func (r *SessionRepository) userID(ctx context.Context, token user.SessionToken) (user.ID, error) {
	val, err := r.redisClient.Get(ctx, sessionKeyPrefix+string(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, user.ErrSessionDoesNotExist
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, user.ErrSessionDoesNotExist
	}
	return user.ID(userID), nil
}
