package validators

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"socketBoard/internal/errs"
)

// MaxImageBytes is the upload limit for board images.
const MaxImageBytes = 5 << 20

// ImageInfo is what an accepted upload looks like after sniffing.
type ImageInfo struct {
	ContentType string
	Extension   string
}

// ValidateImage sniffs data and rejects anything that is not an image or
// is larger than maxBytes. A non-positive maxBytes selects MaxImageBytes.
// The declared file name is only used when sniffing finds no extension.
func ValidateImage(fileName string, data []byte, maxBytes int64) (ImageInfo, error) {
	if maxBytes <= 0 {
		maxBytes = MaxImageBytes
	}
	if len(data) == 0 {
		return ImageInfo{}, errs.ErrEmptyFile
	}
	if int64(len(data)) > maxBytes {
		return ImageInfo{}, errs.ErrImageTooLarge
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return ImageInfo{}, errs.ErrNotAnImage
	}
	ext := strings.TrimPrefix(mt.Extension(), ".")
	if ext == "" {
		if i := strings.LastIndexByte(fileName, '.'); i >= 0 {
			ext = strings.ToLower(fileName[i+1:])
		}
	}
	return ImageInfo{ContentType: strings.SplitN(mt.String(), ";", 2)[0], Extension: ext}, nil
}
