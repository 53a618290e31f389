package service

import (
	"context"
	"errors"
	"fmt"

	"itemtrack/internal/common"
	"itemtrack/internal/domain/model"
	"itemtrack/internal/domain/repository"
)

// SubjectResolver turns a verified token subject id into the current Subject,
// consulting the cache first and falling back to the user store. A token
// whose account no longer exists resolves to ErrUnauthorized.
type SubjectResolver struct {
	userRepo repository.UserRepository
	cache    SubjectCache
}

func NewSubjectResolver(userRepo repository.UserRepository, cache SubjectCache) *SubjectResolver {
	return &SubjectResolver{userRepo: userRepo, cache: cache}
}

func (r *SubjectResolver) Resolve(ctx context.Context, userID string) (model.Subject, error) {
	if sub, ok := r.cache.Get(ctx, userID); ok {
		return sub, nil
	}

	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.Subject{}, common.ErrUnauthorized
		}
		return model.Subject{}, fmt.Errorf("failed to resolve subject: %w", err)
	}

	sub := user.AsSubject()
	r.cache.Set(ctx, sub)
	return sub, nil
}
