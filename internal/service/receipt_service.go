package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/repository/storage"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

const (
	MaxReceiptSize     = 10 * 1024 * 1024 // 10MB
	MinReceiptWidth    = 100
	MinReceiptHeight   = 100
	ThumbnailWidth     = 240
	DisplayWidth       = 1600
	JPEGQuality        = 85
	ReceiptLinkExpiry  = 15 * time.Minute
	receiptThumbSuffix = "_thumb.jpg"
	receiptMainSuffix  = "_display.jpg"
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 10MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrReceiptTooSmall             = errors.New("image too small. Minimum 100x100 pixels")
	ErrInvalidReceiptData          = errors.New("invalid image data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
)

// AllowedReceiptExtensions maps accepted file extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptLinks are short-lived download links for a receipt
type ReceiptLinks struct {
	Key          string    `json:"key"`
	DisplayURL   string    `json:"displayUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ReceiptService resizes receipt images, stores them and links them to expenses
type ReceiptService struct {
	notifier
	store       storage.ReceiptStore
	expenseRepo domain.ExpenseRepository
}

// NewReceiptService creates a new ReceiptService. A nil store disables uploads.
func NewReceiptService(store storage.ReceiptStore, expenseRepo domain.ExpenseRepository) *ReceiptService {
	return &ReceiptService{store: store, expenseRepo: expenseRepo}
}

// IsEnabled indicates whether receipt storage is configured
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// Attach validates and stores an image as the receipt of one of the principal's
// expenses, replacing any previous receipt
func (s *ReceiptService) Attach(ctx context.Context, ownerID string, expenseID uuid.UUID, data []byte, filename string) (*ReceiptLinks, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	img, err := decodeReceipt(data, filename)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("receipts/%s/%s", expenseID, uuid.New())
	variants := []struct {
		key      string
		maxWidth int
	}{
		{base + receiptMainSuffix, DisplayWidth},
		{base + receiptThumbSuffix, ThumbnailWidth},
	}

	uploaded := make([]string, 0, len(variants))
	for _, v := range variants {
		buf, err := encodeReceipt(img, v.maxWidth)
		if err != nil {
			s.deleteKeys(ctx, uploaded)
			return nil, err
		}
		if err := s.store.Upload(ctx, v.key, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.deleteKeys(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, v.key)
	}

	key := variants[0].key
	if err := s.expenseRepo.UpdateReceipt(ctx, ownerID, expenseID, &key); err != nil {
		s.deleteKeys(ctx, uploaded)
		return nil, err
	}
	if expense.ReceiptPath != nil {
		s.purge(ctx, *expense.ReceiptPath)
	}

	expense.ReceiptPath = &key
	s.notifyOwner(ownerID, websocket.EventTypeUpdated, websocket.EntityTypeExpense, expense)

	return s.links(ctx, key)
}

// Links presigns download links for the receipt of one of the principal's expenses
func (s *ReceiptService) Links(ctx context.Context, ownerID string, expenseID uuid.UUID) (*ReceiptLinks, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ReceiptPath == nil {
		return nil, domain.ErrReceiptNotFound
	}
	return s.links(ctx, *expense.ReceiptPath)
}

// Detach removes the receipt of one of the principal's expenses
func (s *ReceiptService) Detach(ctx context.Context, ownerID string, expenseID uuid.UUID) error {
	if !s.IsEnabled() {
		return ErrReceiptStorageNotConfigured
	}

	expense, err := s.expenseRepo.GetByID(ctx, ownerID, expenseID)
	if err != nil {
		return err
	}
	if expense.ReceiptPath == nil {
		return domain.ErrReceiptNotFound
	}
	if err := s.expenseRepo.UpdateReceipt(ctx, ownerID, expenseID, nil); err != nil {
		return err
	}
	s.purge(ctx, *expense.ReceiptPath)

	expense.ReceiptPath = nil
	s.notifyOwner(ownerID, websocket.EventTypeUpdated, websocket.EntityTypeExpense, expense)
	return nil
}

func (s *ReceiptService) links(ctx context.Context, key string) (*ReceiptLinks, error) {
	display, err := s.store.PresignGet(ctx, key, ReceiptLinkExpiry)
	if err != nil {
		return nil, err
	}
	thumb, err := s.store.PresignGet(ctx, thumbnailKey(key), ReceiptLinkExpiry)
	if err != nil {
		return nil, err
	}
	return &ReceiptLinks{
		Key:          key,
		DisplayURL:   display,
		ThumbnailURL: thumb,
		ExpiresAt:    time.Now().Add(ReceiptLinkExpiry).UTC(),
	}, nil
}

// purge deletes both variants of a stored receipt. Failures are logged only.
func (s *ReceiptService) purge(ctx context.Context, key string) {
	s.deleteKeys(ctx, []string{key, thumbnailKey(key)})
}

func (s *ReceiptService) deleteKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete receipt object")
		}
	}
}

func thumbnailKey(key string) string {
	return strings.TrimSuffix(key, receiptMainSuffix) + receiptThumbSuffix
}

// ValidateReceipt checks size, extension and dimensions of an upload
func ValidateReceipt(data []byte, filename string) error {
	_, err := decodeReceipt(data, filename)
	return err
}

func decodeReceipt(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}
	if _, ok := AllowedReceiptExtensions[strings.ToLower(filepath.Ext(filename))]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}
	if b := img.Bounds(); b.Dx() < MinReceiptWidth || b.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}
	return img, nil
}

// encodeReceipt shrinks img to maxWidth, keeping the aspect ratio, and encodes it as JPEG
func encodeReceipt(img image.Image, maxWidth int) (*bytes.Buffer, error) {
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode receipt: %w", err)
	}
	return &buf, nil
}
