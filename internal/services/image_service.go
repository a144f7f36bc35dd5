package services

import (
	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/utils"
)

// MaxEditorUploadBytes caps the raw payload of editor uploads before
// encoding.
const MaxEditorUploadBytes = 10 * 1024 * 1024

// ImageService handles business logic related to stored images.
type ImageService struct {
	repo repositories.ImageRepository
}

// NewImageService creates a new ImageService.
func NewImageService(repo repositories.ImageRepository) *ImageService {
	return &ImageService{repo: repo}
}

// List retrieves a page of image metadata with the exact total.
func (s *ImageService) List(limit, offset int) ([]models.ImageMeta, int64, error) {
	return s.repo.List(limit, offset)
}

// CreateFromBytes stores raw upload bytes as a base64 data URI.
func (s *ImageService) CreateFromBytes(filename, mimeType string, data []byte) (*models.Image, error) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	image := &models.Image{
		Filename: filename,
		MimeType: mimeType,
		DataURI:  utils.BuildDataURI(mimeType, data),
	}
	if err := s.repo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}

// CreateFromDataURI stores a pre-built data URI after a syntax check.
func (s *ImageService) CreateFromDataURI(filename, mimeType, dataURI string) (*models.Image, error) {
	if !utils.IsDataURI(dataURI) {
		return nil, ErrInvalidDataURI
	}
	image := &models.Image{
		Filename: filename,
		MimeType: mimeType,
		DataURI:  dataURI,
	}
	if err := s.repo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}

// Fetch loads an image and decodes its stored data URI back into raw bytes
// and a content type. A stored value that no longer parses is reported as
// corrupt, distinguishable from a missing row.
func (s *ImageService) Fetch(id string) (string, []byte, error) {
	image, err := s.repo.GetByID(id)
	if err != nil {
		return "", nil, err
	}

	contentType, data, err := utils.ParseDataURI(image.DataURI)
	if err != nil {
		return "", nil, ErrCorruptData
	}
	if contentType == "" {
		contentType = image.MimeType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType, data, nil
}

// UpdateMeta applies a metadata-only partial update.
func (s *ImageService) UpdateMeta(id string, data map[string]interface{}) (*models.Image, error) {
	fields := pickFields(data, "filename", "mime_type")
	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}
	return s.repo.UpdateMeta(id, fields)
}

// Delete deletes an image by id.
func (s *ImageService) Delete(id string) error {
	return s.repo.Delete(id)
}
