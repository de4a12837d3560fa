package idempotency

import (
	"time"

	"encore.dev/storage/cache"

	"encore.app/mvola/model"
)

var IdempotencyCluster = cache.NewCluster("mvola-idempotency", cache.ClusterConfig{
	EvictionPolicy: cache.AllKeysLRU,
})

// IdempotencyCache keeps initiate acknowledgments so a retried checkout does not charge twice.
var IdempotencyCache = cache.NewStructKeyspace[model.IdempotencyKey, model.IdempotencyCacheEntry](
	IdempotencyCluster,
	cache.KeyspaceConfig{
		KeyPattern:    "idempotency/:Resource/:Key",
		DefaultExpiry: cache.ExpireIn(24 * time.Hour),
	},
)
