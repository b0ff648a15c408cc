package kvstore

// Persisted keys. The names are part of the on-disk format and match the
// documents produced by earlier releases, so existing backups keep working.
const (
	KeyProducts    = "products"
	KeyCategories  = "categories"
	KeyOrders      = "orders"
	KeyUsers       = "app_users"
	KeySettings    = "storeSettings"
	KeyCart        = "cart"
	KeyInitialized = "is_initialized"
)
