package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/export"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// ErrStorageUnavailable is returned by Archive when no object store is configured
var ErrStorageUnavailable = errors.New("export storage is not configured")

// ExportFormat selects the rendering of an export
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ParseExportFormat accepts csv, json and yaml in any case
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", &nutrition.ValidationError{Field: "format", Message: "must be one of csv, json, yaml"}
	}
}

func (f ExportFormat) contentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/csv"
	}
}

// ExportFile is a rendered export ready to be sent or stored
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ObjectStore uploads objects and hands out temporary download links
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// ExportService renders food logs and archives them to object storage
type ExportService struct {
	meals IMealService
	store ObjectStore
	ttl   time.Duration
	now   func() time.Time
}

// Ensure ExportService implements IExportService
var _ IExportService = (*ExportService)(nil)

// NewExportService creates a new ExportService. store may be nil, in which
// case Archive reports ErrStorageUnavailable.
func NewExportService(meals IMealService, store ObjectStore, urlTTL time.Duration) *ExportService {
	if urlTTL <= 0 {
		urlTTL = 15 * time.Minute
	}
	return &ExportService{
		meals: meals,
		store: store,
		ttl:   urlTTL,
		now:   time.Now,
	}
}

// Export renders the user's meals between from and to (open when empty)
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID, format ExportFormat, from, to string) (*ExportFile, error) {
	meals, err := s.meals.ListMealsInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := export.NewDocument(meals, from, to, now)

	var data []byte
	switch format {
	case FormatCSV:
		data, err = export.CSV(doc)
	case FormatJSON:
		data, err = export.JSON(doc)
	case FormatYAML:
		data, err = export.YAML(doc)
	default:
		return nil, &nutrition.ValidationError{Field: "format", Message: "must be one of csv, json, yaml"}
	}
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Name:        fmt.Sprintf("macrotrack-export-%s.%s", now.UTC().Format(nutrition.DateLayout), format),
		ContentType: format.contentType(),
		Data:        data,
	}, nil
}

// Archive uploads an export under the user's prefix and returns a presigned link to it
func (s *ExportService) Archive(ctx context.Context, userID uuid.UUID, format ExportFormat, from, to string) (*types.ArchiveResponse, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	file, err := s.Export(ctx, userID, format, from, to)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/%s-%s", userID, uuid.NewString(), file.Name)
	if err := s.store.PutObject(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	return &types.ArchiveResponse{
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}, nil
}
