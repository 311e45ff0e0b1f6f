package services

import (
	"context"

	"github.com/google/uuid"
)

// UserLocker serializes work per user. The returned func releases the lock.
type UserLocker interface {
	Lock(ctx context.Context, userID uuid.UUID) (func(), error)
}
