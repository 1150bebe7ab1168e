// Package constants contains string identifiers shared across layers.
package constants

// Deployment environments. Push authentication is skipped in both.
const (
	EnvLocal   = "local"
	EnvDevelop = "develop"
)

// Change feed providers.
const (
	ChangeFeedProviderMemory = "memory"
	ChangeFeedProviderRedis  = "redis"
	ChangeFeedProviderGoogle = "google"
	ChangeFeedProviderKafka  = "kafka"
)

// Object storage drivers.
const (
	StorageDriverFile = "file"
	StorageDriverMem  = "mem"
	StorageDriverGCS  = "gs"
	StorageDriverS3   = "s3"
)

// Storage buckets.
const (
	BucketSellerProofs = "seller-proofs"
	BucketProductImage = "product-images"
	BucketImages       = "neighborhood-images"
)

// Folders inside BucketImages.
const (
	FolderAvatars = "avatars"
	FolderReviews = "reviews"
	FolderShops   = "shops"
)
