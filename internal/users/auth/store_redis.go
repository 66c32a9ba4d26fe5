// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/constants"
)

// RedisCodeRepository implements CodeRepository using Redis.
//
// Storing the codes in Redis (instead of a user column) gives expiry for
// free and guarantees that restarting or re-seeding the database never
// leaves stale codes behind.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores a confirmation-code hash under the username with a TTL.

Parameters:
  - context: context.Context
  - username: string
  - codeHash: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisCodeRepository) Set(context context.Context, username, codeHash string, ttl time.Duration) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixConfirmationCode, username)

	// Set the hash with TTL. A repeated signup overwrites the previous code.
	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the stored code hash for a username.

Description: Returns apperr.NotFound if no code is pending or it expired.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: Stored bcrypt hash
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context context.Context, username string) (string, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixConfirmationCode, username)

	// Get the hash from Redis
	codeHash, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code")
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	// Return the hash
	return codeHash, nil
}

/*
Delete removes the pending code for a username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisCodeRepository) Delete(context context.Context, username string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixConfirmationCode, username)

	// Delete the hash from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
