// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/directorscut/internal/platform/apperr"
	"github.com/taibuivan/directorscut/internal/platform/constants"
)

// RedisTokenRepository implements [TokenRepository] under one key prefix.
type RedisTokenRepository struct {
	client   *redis.Client
	prefix   string
	notFound string
}

// NewResetTokenRepository stores password reset tokens.
func NewResetTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client:   client,
		prefix:   constants.RedisPrefixResetToken,
		notFound: "Reset token is invalid or expired",
	}
}

// NewVerificationTokenRepository stores email confirmation tokens.
func NewVerificationTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{
		client:   client,
		prefix:   constants.RedisPrefixVerifyToken,
		notFound: "Verification token is invalid or expired",
	}
}

/*
Set stores tokenHash with its associated userID and TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRepository) Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.prefix+tokenHash, userID, ttl).Err(); err != nil {
		return apperr.TransientNetwork(fmt.Errorf("redis_token_set_failed: %w", err))
	}
	return nil
}

// Get returns the userID stored for tokenHash.
func (repository *RedisTokenRepository) Get(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.Get(context, repository.prefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.ValidationError(repository.notFound,
			apperr.FieldError{Field: FieldToken, Message: repository.notFound})
	}
	if err != nil {
		return "", apperr.TransientNetwork(fmt.Errorf("redis_token_get_failed: %w", err))
	}
	return userID, nil
}

// Delete removes the token after use.
func (repository *RedisTokenRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, repository.prefix+tokenHash).Err(); err != nil {
		return apperr.TransientNetwork(fmt.Errorf("redis_token_delete_failed: %w", err))
	}
	return nil
}
