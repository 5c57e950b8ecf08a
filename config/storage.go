package config

import (
	"log"
	"os"

	"task-review-api/storage"
)

var fileStore storage.Store

// InitStorage selects the file storage driver from STORAGE_DRIVER
// ("local" or "s3", default local).
func InitStorage() {
	driver := os.Getenv("STORAGE_DRIVER")

	switch driver {
	case "s3":
		region := os.Getenv("S3_REGION")
		bucket := os.Getenv("S3_BUCKET")
		if region == "" || bucket == "" {
			log.Fatal("STORAGE_DRIVER=s3 requires S3_REGION and S3_BUCKET")
		}
		store, err := storage.NewS3Store(region, bucket)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage:", err)
		}
		fileStore = store
		log.Printf("File storage: s3 bucket %s (%s)", bucket, region)
	default:
		uploadPath := os.Getenv("UPLOAD_PATH")
		if uploadPath == "" {
			uploadPath = "./uploads"
		}
		store, err := storage.NewLocalStore(uploadPath)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
		fileStore = store
		log.Printf("File storage: local directory %s", uploadPath)
	}
}

// FileStore returns the configured storage driver.
func FileStore() storage.Store {
	return fileStore
}
