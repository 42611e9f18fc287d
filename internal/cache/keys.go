package cache

import "strings"

const (
	GlobalKeyPrefix = "restaurantquiz"
)

// Services and object types used across the application.
const (
	ServiceSession = "session"
	ServiceCatalog = "catalog"

	ObjectState      = "state"
	ObjectRestaurant = "restaurant"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SessionStateKey is where a quiz session snapshot lives.
func SessionStateKey(sessionID string) string {
	return GenerateCacheKey(ServiceSession, ObjectState, sessionID)
}

// CatalogKey is where a restaurant's catalog snapshot lives.
func CatalogKey(restaurantID string) string {
	return GenerateCacheKey(ServiceCatalog, ObjectRestaurant, restaurantID)
}
