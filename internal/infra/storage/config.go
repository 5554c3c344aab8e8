package storage

import "github.com/Builder-Lawyers/site-builder/pkg/env"

type StorageConfig struct {
	Bucket string
	Region string
	// PublicBaseURL overrides the bucket URL used for links to stored objects,
	// e.g. a CDN in front of the bucket.
	PublicBaseURL string
}

func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Bucket:        env.GetEnv("S3_BUCKET", "site-builder"),
		Region:        env.GetEnv("AWS_DEFAULT_REGION", "eu-north-1"),
		PublicBaseURL: env.GetEnv("S3_PUBLIC_BASE_URL", ""),
	}
}
