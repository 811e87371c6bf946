package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"time"

	"school_reports_backend/internal/document"
	"school_reports_backend/internal/model"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/util"
	"school_reports_backend/pkg/logger"

	"go.uber.org/zap"
)

// Document is a generated file ready to be streamed. URL is set when the
// file was archived.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	URL         string
}

// TemplateService keeps the background PDFs documents are printed over,
// one per layout, under a storage prefix.
type TemplateService struct {
	storage *StorageService
	prefix  string
}

func NewTemplateService(storage *StorageService, prefix string) *TemplateService {
	return &TemplateService{storage: storage, prefix: prefix}
}

func (s *TemplateService) key(name string) string {
	return path.Join(s.prefix, name+".pdf")
}

func knownLayout(name string) bool {
	for _, n := range document.LayoutNames {
		if n == name {
			return true
		}
	}
	return false
}

// Load returns the template of a layout, or nil when none was uploaded. A
// nil *TemplateService has no templates.
func (s *TemplateService) Load(ctx context.Context, name string) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	data, err := s.storage.Open(ctx, s.key(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", util.ErrTemplate, name, err)
	}
	return data, nil
}

// Save replaces the template of a layout after checking it is a PDF.
func (s *TemplateService) Save(ctx context.Context, name string, data []byte) (string, error) {
	if !knownLayout(name) {
		return "", fmt.Errorf("%w: unknown layout %q", util.ErrTemplate, name)
	}
	mimeType, err := util.ValidateMimeType(bytes.NewReader(data), []string{util.MimePDF})
	if err != nil || !util.IsPDF(mimeType) {
		return "", fmt.Errorf("%w: %s is not a PDF", util.ErrTemplate, name)
	}
	if err := document.CheckTemplate(data); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return s.storage.UploadBytes(ctx, s.key(name), data, util.MimePDF)
}

// Remove drops the template of a layout; documents go back to printing on a
// blank page.
func (s *TemplateService) Remove(ctx context.Context, name string) error {
	if !knownLayout(name) {
		return fmt.Errorf("%w: unknown layout %q", util.ErrTemplate, name)
	}
	return s.storage.Delete(ctx, s.key(name))
}

// Archiver copies generated documents to storage and records them. A nil
// *Archiver archives nothing.
type Archiver struct {
	storage *StorageService
	repo    *repository.ArchiveRepository
	prefix  string
}

func NewArchiver(storage *StorageService, repo *repository.ArchiveRepository, prefix string) *Archiver {
	return &Archiver{storage: storage, repo: repo, prefix: prefix}
}

// Archive uploads doc and sets doc.URL. Failures are logged: the document
// was produced and is still returned to the caller.
func (a *Archiver) Archive(ctx context.Context, kind, reference string, userID uint, doc *Document) {
	if a == nil {
		return
	}
	name := path.Join(a.prefix, kind, time.Now().Format("20060102"), model.GenerateUUID()+"_"+doc.Filename)
	url, err := a.storage.UploadBytes(ctx, name, doc.Data, doc.ContentType)
	if err != nil {
		logger.Log.Error("archive upload failed", zap.String("kind", kind), zap.String("reference", reference), zap.Error(err))
		return
	}
	doc.URL = url

	if a.repo == nil {
		return
	}
	record := &model.ReportArchive{
		Kind:      kind,
		Reference: reference,
		Filename:  doc.Filename,
		URL:       url,
		Size:      int64(len(doc.Data)),
		CreatedBy: userID,
	}
	if err := a.repo.Create(ctx, record); err != nil {
		logger.Log.Error("archive record failed", zap.String("kind", kind), zap.String("url", url), zap.Error(err))
	}
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
