package classify

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"worthy-waste/domain"
	"worthy-waste/internal/utils/storage"
)

type (
	ClassifyService interface {
		ClassifyImage(ctx context.Context, image *multipart.FileHeader, note string) (domain.ClassifyImageResponse, error)
		GetCategories() []domain.WasteCategoryInfo
		DeleteImage(ctx context.Context, filename string) error
	}

	classifyService struct {
		s3 storage.AwsS3
	}
)

func NewClassifyService(s3 storage.AwsS3) ClassifyService {
	return &classifyService{s3: s3}
}

func (s *classifyService) ClassifyImage(ctx context.Context, image *multipart.FileHeader, note string) (domain.ClassifyImageResponse, error) {
	if image == nil {
		return domain.ClassifyImageResponse{}, domain.ErrImageRequired
	}
	if image.Size > domain.MaxWasteImageSize {
		return domain.ClassifyImageResponse{}, domain.ErrImageTooLarge
	}

	mimeType := image.Header.Get("Content-Type")
	if mimeType != "" && !strings.HasPrefix(mimeType, "image/") {
		return domain.ClassifyImageResponse{}, domain.ErrInvalidImageFormat
	}

	fileName := fmt.Sprintf("waste-%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(image.Filename)))
	objectKey, err := s.s3.UploadFile(fileName, image, domain.WasteImageFolder, storage.AllowImage...)
	if err != nil {
		return domain.ClassifyImageResponse{}, err
	}

	classification := ClassifyWasteText(CombineText(image.Filename, note))
	log.Infof("classified %s as %s", objectKey, classification.Category)

	return domain.ClassifyImageResponse{
		Classification: classification,
		File: domain.UploadedFile{
			Key:          objectKey,
			URL:          s.s3.GetPublicLinkKey(objectKey),
			OriginalName: image.Filename,
			Size:         image.Size,
			MimeType:     mimeType,
		},
	}, nil
}

func (s *classifyService) GetCategories() []domain.WasteCategoryInfo {
	return Categories
}

// DeleteImage removes a previously classified upload by its bare file name.
func (s *classifyService) DeleteImage(ctx context.Context, filename string) error {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == "/" {
		return domain.ErrImageNotFound
	}

	objectKey := domain.WasteImageFolder + "/" + filename
	exists, err := s.s3.ObjectExists(objectKey)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrImageNotFound
	}
	return s.s3.DeleteFile(objectKey)
}
