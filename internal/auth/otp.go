package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore persists one-time codes between the request and verify calls
type OTPStore interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, phone string) error
}

type redisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates an OTP store backed by redis
func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

func codeKey(phone string) string     { return "otp:code:" + phone }
func attemptsKey(phone string) string { return "otp:attempts:" + phone }

func (s *redisOTPStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	// A resend replaces the previous code and resets the attempt counter.
	if err := s.client.Set(ctx, codeKey(phone), code, ttl).Err(); err != nil {
		return err
	}
	return s.client.Del(ctx, attemptsKey(phone)).Err()
}

func (s *redisOTPStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return "", ErrOTPExpired
	}
	return code, err
}

func (s *redisOTPStore) IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	key := attemptsKey(phone)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// Attempts expire with the code they guard.
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKey(phone), attemptsKey(phone)).Err()
}

// GenerateCode produces a zero-padded numeric code of the given length
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
