package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "aura/internal/errors"
	"aura/internal/logger"
	"aura/internal/model"
	"aura/internal/pdf"
	"aura/internal/repository"
)

const (
	// MaxUploadSize is the server-side ceiling for uploaded PDFs.
	MaxUploadSize = 100 << 20

	previewLength      = 500
	namedContextLimit  = 3000
	perDocContextLimit = 1000
	totalContextLimit  = 4000
)

// UploadResult is the caller-visible outcome of an upload.
type UploadResult struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	Pages      int       `json:"pages"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DocumentService handles PDF ingestion, retrieval and chat-context assembly.
type DocumentService interface {
	Upload(ctx context.Context, ownerID, originalName, contentType string, size int64, r io.Reader) (*UploadResult, string, error)
	List(ctx context.Context, ownerID string) ([]model.DocumentInfo, error)
	Delete(ctx context.Context, ownerID, id string) error
	Context(ctx context.Context, ownerID, pdfID string) (string, error)
	Text(ctx context.Context, ownerID, id string) (string, error)
}

type documentService struct {
	docRepo   repository.DocumentRepository
	extractor pdf.Extractor
	uploadDir string
}

// NewDocumentService creates a document service storing binaries under uploadDir.
func NewDocumentService(docRepo repository.DocumentRepository, extractor pdf.Extractor, uploadDir string) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		extractor: extractor,
		uploadDir: uploadDir,
	}
}

// Upload validates, stores and parses a PDF, then records its metadata.
// Returns the stored document's summary plus a short text preview.
// Validation happens before any write; a parse failure removes the
// already-written binary.
func (s *documentService) Upload(ctx context.Context, ownerID, originalName, contentType string, size int64, r io.Reader) (*UploadResult, string, error) {
	if !isPDF(originalName, contentType) {
		return nil, "", apperrors.NewValidationError("Only PDF files are allowed")
	}
	if size > MaxUploadSize {
		return nil, "", apperrors.NewValidationError("File too large (max 100MB)")
	}

	filename := uuid.NewString() + ".pdf"
	path := filepath.Join(s.uploadDir, filename)
	if err := writeFile(path, r); err != nil {
		return nil, "", fmt.Errorf("store upload: %w", err)
	}

	text, pages, err := s.extractor.Extract(path)
	if err != nil {
		os.Remove(path)
		return nil, "", err
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		Filename:     filename,
		OriginalName: originalName,
		Text:         text,
		Size:         size,
		Pages:        pages,
		UploadedAt:   now,
		LastAccessed: now,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		os.Remove(path)
		return nil, "", fmt.Errorf("store document: %w", err)
	}

	result := &UploadResult{
		ID:         doc.ID,
		Filename:   doc.OriginalName,
		Size:       doc.Size,
		Pages:      doc.Pages,
		UploadedAt: doc.UploadedAt,
	}
	return result, truncate(text, previewLength) + "...", nil
}

// List returns the caller's documents, insertion order preserved, metadata only.
func (s *documentService) List(ctx context.Context, ownerID string) ([]model.DocumentInfo, error) {
	docs, err := s.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	infos := make([]model.DocumentInfo, 0, len(docs))
	for i := range docs {
		infos = append(infos, docs[i].Info())
	}
	return infos, nil
}

// Delete removes the stored binary and the metadata record. A missing binary
// is not an error; a missing or foreign record is.
func (s *documentService) Delete(ctx context.Context, ownerID, id string) error {
	doc, err := s.docRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return apperrors.ErrPDFNotFound
	}

	if err := os.Remove(filepath.Join(s.uploadDir, doc.Filename)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove binary: %w", err)
	}
	if err := s.docRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrPDFNotFound
		}
		return err
	}
	return nil
}

// Context assembles chat context from the caller's documents. A named pdfID
// yields up to 3000 chars of that document; otherwise every owned document
// contributes up to 1000 chars, capped at 4000 total. Unknown or foreign ids
// fall back to empty context, never another user's text.
func (s *documentService) Context(ctx context.Context, ownerID, pdfID string) (string, error) {
	if pdfID != "" {
		doc, err := s.docRepo.FindByID(ctx, ownerID, pdfID)
		if err != nil {
			return "", nil
		}
		s.touchAccess(ctx, doc.ID)
		return truncate(doc.Text, namedContextLimit), nil
	}

	docs, err := s.docRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(docs))
	for i := range docs {
		if docs[i].Text == "" {
			continue
		}
		parts = append(parts, truncate(docs[i].Text, perDocContextLimit))
	}
	return truncate(strings.Join(parts, "\n\n"), totalContextLimit), nil
}

// Text returns a document's full extracted text and touches its access time.
func (s *documentService) Text(ctx context.Context, ownerID, id string) (string, error) {
	doc, err := s.docRepo.FindByID(ctx, ownerID, id)
	if err != nil || doc.Text == "" {
		return "", apperrors.ErrPDFNotFound
	}
	s.touchAccess(ctx, doc.ID)
	return doc.Text, nil
}

// touchAccess records a read. Failures never block the read itself but are
// logged so a persistently failing write surfaces.
func (s *documentService) touchAccess(ctx context.Context, id string) {
	if err := s.docRepo.TouchAccess(ctx, id, time.Now().UTC()); err != nil {
		logger.Sugar.Warnw("touch document access", "id", id, "error", err)
	}
}

func isPDF(name, contentType string) bool {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return true
	}
	return contentType == "application/pdf"
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	// Back up to a rune boundary so the cut never splits a character.
	for limit > 0 && s[limit]&0xC0 == 0x80 {
		limit--
	}
	return s[:limit]
}
