package catalog

import "time"

// Pool building
const (
	// DefaultTierOdds applies to tiers a box has no odds row for
	DefaultTierOdds = 100.0
	UnknownItemName = "Unknown Item"
	imageExt        = ".png"
)

// Cache defaults
const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 5 * time.Minute
)

// Error contexts
const (
	ErrContextReadFile   = "failed to read catalog file"
	ErrContextParseFile  = "failed to parse catalog file"
	ErrContextQueryBox   = "failed to query box"
	ErrContextQueryItems = "failed to query box items"
	ErrContextQueryOdds  = "failed to query box odds"
	ErrContextListBoxes  = "failed to list boxes"
	ErrContextSyncBox    = "failed to sync box"
	ErrContextSyncBegin  = "failed to begin catalog sync"
	ErrContextSyncCommit = "failed to commit catalog sync"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Item catalog loaded"
	LogMsgCacheHit      = "Box pool served from cache"
	LogMsgCacheMiss     = "Box pool cache miss"
	LogMsgPoolBuilt     = "Box pool built"
	LogMsgCatalogSynced = "Item catalog synced to database"
)
