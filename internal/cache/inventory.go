package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CampgroundKeyPrefix = "campground:%d"
	CampgroundListKey   = "campgrounds:list"
)

const (
	CampgroundTTL = 10 * time.Minute
	ListTTL       = 1 * time.Minute
)

func CampgroundKey(id uint) string {
	return fmt.Sprintf(CampgroundKeyPrefix, id)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateCampground(ctx context.Context, id uint) {
	Invalidate(ctx, CampgroundKey(id))
	Invalidate(ctx, CampgroundListKey)
}

func InvalidateCampgroundList(ctx context.Context) {
	Invalidate(ctx, CampgroundListKey)
}
