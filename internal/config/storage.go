package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	UploadDir     string
	SigningSecret string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		dir := os.Getenv("STORAGE_UPLOAD_DIR")
		if dir == "" {
			dir = "./uploads/resumes"
		}
		storageConfig = &StorageConfig{
			UploadDir:     dir,
			SigningSecret: os.Getenv("STORAGE_SIGNING_SECRET"),
		}
	})
	return storageConfig
}
