package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/logger"

	"go.uber.org/zap"
)

type Uploader interface {
	Upload(ctx context.Context, kind, filename string, r io.Reader) (*model.UploadResponse, error)
}

var uploadExtensions = map[string][]string{
	util.UploadImage: util.AllowedImageExtensions,
	util.UploadVideo: util.AllowedVideoExtensions,
	util.UploadPDF:   util.AllowedPDFExtensions,
}

type UploadService struct {
	remote  Uploader
	session *SessionService
}

func NewUploadService(remote Uploader, session *SessionService) *UploadService {
	return &UploadService{remote: remote, session: session}
}

// UploadFile sends a local file to the backend. Uploads have no offline fallback.
func (s *UploadService) UploadFile(ctx context.Context, kind, path string) (*model.UploadedFile, error) {
	if !s.session.IsAuthenticated() {
		return nil, util.ErrNotAuthenticated
	}
	allowed, ok := uploadExtensions[kind]
	if !ok {
		return nil, util.NewValidationError(util.FieldError{Field: "kind", Error: "kind must be one of [image video pdf]"})
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(allowed, ext) {
		return nil, util.NewValidationError(util.FieldError{
			Field: "file",
			Error: fmt.Sprintf("%s files must end with one of %v", kind, allowed),
		})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	resp, err := s.remote.Upload(ctx, kind, filepath.Base(path), f)
	if err != nil {
		logger.Log.Warn("upload failed", zap.String("kind", kind), zap.String("file", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrBackendUnavailable, err)
	}
	return &resp.File, nil
}
