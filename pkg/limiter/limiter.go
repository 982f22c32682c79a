// Package limiter provides token-bucket rate limiting keyed by URI prefix.
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter interface consumed by the middleware.
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule configures one token bucket.
type BucketRule struct {
	// Key is the URI prefix the bucket applies to.
	Key string
	// FillInterval is the interval between token refills.
	FillInterval time.Duration
	// Capacity is the bucket size.
	Capacity int64
	// Quantum is the number of tokens added per refill.
	Quantum int64
}

// MethodLimiter matches buckets against the request path prefix.
type MethodLimiter struct {
	buckets map[string]*ratelimit.Bucket
}

func NewMethodLimiter() Face {
	return &MethodLimiter{buckets: map[string]*ratelimit.Bucket{}}
}

// Key strips the query string and returns the request path.
func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index >= 0 {
		return uri[:index]
	}
	return uri
}

// GetBucket returns the first bucket whose key is a prefix of key.
func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	for prefix, bucket := range l.buckets {
		if strings.Contains(key, prefix) {
			return bucket, true
		}
	}
	return nil, false
}

// AddBuckets registers rules and returns the limiter for chaining.
func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.buckets[rule.Key]; !ok {
			l.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
