package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	JobKeyPrefix = "job:%d"
)

const (
	JobTTL = 10 * time.Minute
)

func JobKey(jobID uint) string {
	return fmt.Sprintf(JobKeyPrefix, jobID)
}

func InvalidateJob(ctx context.Context, rdb *redis.Client, jobID uint) {
	Invalidate(ctx, rdb, JobKey(jobID))
}

// keyFamily returns the prefix of key up to the first colon, used as a
// metric label.
func keyFamily(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
