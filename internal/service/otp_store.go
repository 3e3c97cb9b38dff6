package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps short-lived email verification codes
type OTPStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type redisOTPStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisOTPStore creates an OTPStore backed by redis with per-code TTL
func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client, keyPrefix: "otp"}
}

func (s *redisOTPStore) key(email string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, email)
}

// Set stores a code, replacing any previous one for the same email
func (s *redisOTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

// Get retrieves the stored code; redis.Nil is passed through so callers
// can treat a missing key as an expired code.
func (s *redisOTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", err
		}
		return "", fmt.Errorf("failed to read OTP: %w", err)
	}
	return code, nil
}

// Delete removes the stored code after a successful verification
func (s *redisOTPStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}
	return nil
}

// generateOTP produces a zero-padded 6-digit numeric code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
