package utils

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

var bgContext = context.Background()

// APIKeyMiddleware authenticates webhook callers via the X-API-Key header.
// Keys are stored hashed; verified hashes are cached in redis for an hour so
// a busy integration does not hit the database on every delivery.
func APIKeyMiddleware(ctx iris.Context) {
	key := ctx.GetHeader("X-API-Key")
	if key == "" {
		JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "missing X-API-Key header")
		return
	}

	sum := sha256.Sum256([]byte(key))
	hash := hex.EncodeToString(sum[:])

	if storage.Redis != nil {
		if name, err := storage.Redis.Get(bgContext, "apikey:"+hash).Result(); err == nil && name != "" {
			ctx.Values().Set("apiKeyName", name)
			ctx.Next()
			return
		}
	}

	var apiKey models.APIKey
	result := storage.DB.Where("key_hash = ?", hash).First(&apiKey)
	if result.Error != nil || apiKey.IsActive == nil || !*apiKey.IsActive {
		JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "invalid API key")
		return
	}

	now := time.Now()
	storage.DB.Model(&apiKey).Update("last_used_at", &now)
	if storage.Redis != nil {
		storage.Redis.Set(bgContext, "apikey:"+hash, apiKey.Name, time.Hour)
	}

	ctx.Values().Set("apiKeyName", apiKey.Name)
	ctx.Next()
}

// CronSecretMiddleware guards scheduled trigger endpoints with the shared
// secret from CRON_SECRET, sent as a bearer token.
func CronSecretMiddleware(ctx iris.Context) {
	secret := os.Getenv("CRON_SECRET")
	if secret == "" {
		JSONError(ctx, iris.StatusServiceUnavailable, "unavailable", "CRON_SECRET is not configured")
		return
	}

	header := ctx.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "invalid cron secret")
		return
	}
	ctx.Next()
}
