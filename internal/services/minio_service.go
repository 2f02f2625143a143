package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"socketBoard/configs"
	"socketBoard/internal/enums"
)

const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

type MinioService struct {
	minioClient *minio.Client
	config      *configs.Config
}

var (
	minioService *MinioService
	minioOnce    sync.Once
)

func NewMinioService(ctx context.Context, config *configs.Config) *MinioService {
	minioOnce.Do(func() {
		endpoint := config.Viper.GetString("minio.endpoint")
		accessKeyID := config.Viper.GetString("minio.access_key_id")
		secretAccessKey := config.Viper.GetString("minio.secret_access_key")
		useSSL := config.Viper.GetBool("minio.use_ssl")

		minioClient, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
			Secure: useSSL,
		})
		if err != nil {
			log.Fatalln(err)
		}

		bucketName := enums.FILE_BUCKET_WHITEBOARD_IMAGES
		if err := ensureBucket(ctx, minioClient, bucketName); err != nil {
			log.Fatalln(err)
		}
		policy := fmt.Sprintf(publicReadPolicy, bucketName)
		if err := minioClient.SetBucketPolicy(ctx, bucketName, policy); err != nil {
			log.Printf("[MinioService] could not make %s public: %v", bucketName, err)
		}

		minioService = &MinioService{
			minioClient: minioClient,
			config:      config,
		}
	})

	if minioService == nil {
		log.Fatalln("MinioService is not initialized")
	}
	return minioService
}

func ensureBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err == nil {
		log.Printf("[MinioService] created bucket %s", bucketName)
		return nil
	}
	exists, errBucketExists := client.BucketExists(ctx, bucketName)
	if errBucketExists == nil && exists {
		log.Printf("[MinioService] bucket %s already exists", bucketName)
		return nil
	}
	return err
}

func (ms *MinioService) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64, contentType string, bucketName string) (string, error) {
	info, err := ms.minioClient.PutObject(ctx, bucketName, fileName, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Printf("[MinioService] put %s/%s: %v", bucketName, fileName, err)
		return "", err
	}
	return ms.GetPublicFileUrl(bucketName, info.Key), nil
}

func (ms *MinioService) GetPublicFileUrl(bucketName, fileKey string) string {
	scheme := "http"
	if ms.config.Viper.GetBool("minio.use_ssl") {
		scheme = "https"
	}
	externalEndpoint := ms.config.Viper.GetString("minio.external_endpoint")
	return fmt.Sprintf("%s://%s/%s/%s", scheme, externalEndpoint, bucketName, fileKey)
}

// Ping reports whether the storage endpoint answers.
func (ms *MinioService) Ping(ctx context.Context) error {
	_, err := ms.minioClient.BucketExists(ctx, enums.FILE_BUCKET_WHITEBOARD_IMAGES)
	return err
}
