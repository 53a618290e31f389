package service

import (
	"context"
	"encoding/json"
	"time"

	"itemtrack/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SubjectCache holds resolved subjects between requests so the auth
// middleware does not hit Postgres on every call. Entries are short-lived and
// invalidated whenever the account changes or is deleted.
type SubjectCache interface {
	Get(ctx context.Context, userID string) (model.Subject, bool)
	Set(ctx context.Context, sub model.Subject)
	Invalidate(ctx context.Context, userID string)
}

type redisSubjectCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

func NewRedisSubjectCache(rdb *redis.Client, ttl time.Duration, log *logrus.Logger) SubjectCache {
	return &redisSubjectCache{rdb: rdb, ttl: ttl, log: log}
}

func subjectKey(userID string) string {
	return "subject:" + userID
}

// Get treats any Redis failure as a cache miss; authentication must keep
// working when the cache is down.
func (c *redisSubjectCache) Get(ctx context.Context, userID string) (model.Subject, bool) {
	var sub model.Subject
	raw, err := c.rdb.Get(ctx, subjectKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Debug("subject cache get failed")
		}
		return sub, false
	}
	if err := json.Unmarshal(raw, &sub); err != nil {
		c.log.WithError(err).Debug("subject cache entry corrupt")
		return sub, false
	}
	return sub, true
}

func (c *redisSubjectCache) Set(ctx context.Context, sub model.Subject) {
	raw, err := json.Marshal(sub)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, subjectKey(sub.ID), raw, c.ttl).Err(); err != nil {
		c.log.WithError(err).Debug("subject cache set failed")
	}
}

func (c *redisSubjectCache) Invalidate(ctx context.Context, userID string) {
	if err := c.rdb.Del(ctx, subjectKey(userID)).Err(); err != nil {
		c.log.WithError(err).Debug("subject cache invalidate failed")
	}
}
