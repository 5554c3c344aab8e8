package file

import "github.com/Builder-Lawyers/site-builder/pkg/env"

type UploadConfig struct {
	MaxBytes int64
}

func NewUploadConfig() UploadConfig {
	return UploadConfig{
		MaxBytes: int64(env.GetEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
	}
}
