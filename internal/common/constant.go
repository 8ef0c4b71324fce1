package common

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Secret store keys.
const (
	AuthTokenKey     = "authToken"
	EncryptionKeyKey = "kv-encryption-key"
)

// Key-value store instance ids.
const (
	AppStorageID   = "app-storage"
	CacheStorageID = "cache-storage"
)

// Key-value store keys.
const (
	AuthStorageName        = "auth-storage"
	PreferencesStorageName = "ui-preferences"
	UserDataKey            = "user_data"
)
