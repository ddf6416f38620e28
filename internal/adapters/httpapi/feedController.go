package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"yatube/internal/config"
	"yatube/internal/core/pagination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// cacheTimeout bounds each cache call.
const cacheTimeout = 500 * time.Millisecond

type FeedController struct {
	fc    FeedUseCase
	cache PageCache
}

func NewFeedController(fc FeedUseCase, cache PageCache) *FeedController {
	return &FeedController{fc: fc, cache: cache}
}

// Index serves the global feed, cached per page number.
func (ctl *FeedController) Index(c *gin.Context) {
	number := max(pagination.ParseNumber(c.Query("page")), 1)

	if body, ok := ctl.cached(c.Request.Context(), indexKey(number)); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	page, err := ctl.fc.Index(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := json.Marshal(gin.H{"page_obj": page})
	if err != nil {
		respondError(c, err)
		return
	}
	// page numbers past the end are clamped and stored under the page served
	ctl.store(c.Request.Context(), indexKey(page.Number), body)
	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func indexKey(number int) string {
	return fmt.Sprintf("index:%d", number)
}

func (ctl *FeedController) Group(c *gin.Context) {
	feed, err := ctl.fc.Group(c.Request.Context(), c.Param("slug"), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (ctl *FeedController) Profile(c *gin.Context) {
	feed, err := ctl.fc.Profile(
		c.Request.Context(),
		c.Param("username"),
		currentUserID(c),
		pagination.ParseNumber(c.Query("page")),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Follow serves posts by the authors the current user follows.
func (ctl *FeedController) Follow(c *gin.Context) {
	page, err := ctl.fc.Follow(c.Request.Context(), currentUserID(c), pagination.ParseNumber(c.Query("page")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page_obj": page})
}

func (ctl *FeedController) cached(ctx context.Context, key string) ([]byte, bool) {
	if ctl.cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	body, ok, err := ctl.cache.Get(ctx, key)
	if err != nil {
		config.Logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return body, ok
}

func (ctl *FeedController) store(ctx context.Context, key string, body []byte) {
	if ctl.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := ctl.cache.Set(ctx, key, body); err != nil {
		config.Logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidateIndex drops cached index pages after a post changes.
func invalidateIndex(ctx context.Context, cache PageCache) {
	if cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := cache.Clear(ctx); err != nil {
		config.Logger.Warn("page cache clear failed", zap.Error(err))
	}
}
