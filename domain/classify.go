package domain

import (
	"errors"
)

const (
	WasteCompostable = "compostable"
	WasteRecyclable  = "recyclable"
	WasteNonUsable   = "non-usable"

	MaxWasteImageSize = 5 * 1024 * 1024
	WasteImageFolder  = "waste"
)

var (
	MessageSuccessClassifyImage = "image classified successfully"
	MessageSuccessGetCategories = "waste categories retrieved successfully"
	MessageSuccessDeleteImage   = "image deleted successfully"

	MessageFailedClassifyImage = "failed to classify image"
	MessageFailedDeleteImage   = "failed to delete image"

	ErrImageRequired = errors.New("image file is required")
	ErrImageTooLarge = errors.New("image exceeds the 5MB limit")
	ErrImageNotFound = errors.New("image not found")
)

type (
	WasteClassification struct {
		Category string `json:"category"`
		Action   string `json:"action"`
	}

	ClassifyImageResponse struct {
		Classification WasteClassification `json:"classification"`
		File           UploadedFile        `json:"file"`
	}

	UploadedFile struct {
		Key          string `json:"key"`
		URL          string `json:"url"`
		OriginalName string `json:"original_name"`
		Size         int64  `json:"size"`
		MimeType     string `json:"mime_type"`
	}

	WasteCategoryInfo struct {
		Key         string   `json:"key"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Examples    []string `json:"examples"`
		Color       string   `json:"color"`
	}
)
