package redis

const (
	// KeyCatalog is the single key holding the whole ordered catalog.
	KeyCatalog = "youlearn:catalog"
)

// CatalogKey returns the Redis key for the catalog snapshot.
func CatalogKey() string {
	return KeyCatalog
}
