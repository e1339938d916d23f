package constants

// Defaults for search and indexing operations
const (
	DefaultSearchLimit = 5
	DefaultListLimit   = 20

	// Token budget for normalized bookmark text
	DefaultMaxTextTokens = 7500

	// Bounded concurrency for scrape+embed during reindex
	DefaultIndexWorkers = 4

	// Embedding serialization
	BytesPerFloat32 = 4
)

// File permissions
const (
	ConfigFileMode = 0600 // Secure file permissions for config
)
