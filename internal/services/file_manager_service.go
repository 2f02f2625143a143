package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"socketBoard/internal/enums"
	"socketBoard/internal/interfaces"
	"socketBoard/internal/validators"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
	maxBytes    int64
}

func NewFileManagerService(fileManager interfaces.FileManager, maxBytes int64) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
		maxBytes:    maxBytes,
	}
}

// UploadWhiteboardImage stores an image under a fresh object name and
// returns its public URL. Files that are not images or exceed the size
// limit never reach the file manager.
func (fs *FileManagerService) UploadWhiteboardImage(ctx context.Context, fileName string, data []byte) (string, error) {
	info, err := validators.ValidateImage(fileName, data, fs.maxBytes)
	if err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("%s/%s.%s", enums.FILE_PREFIX_WHITEBOARD_IMAGES, uuid.NewString(), info.Extension)
	return fs.fileManager.UploadFile(
		ctx,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		info.ContentType,
		enums.FILE_BUCKET_WHITEBOARD_IMAGES,
	)
}
