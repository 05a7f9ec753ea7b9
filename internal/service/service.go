package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/storage"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// FileStore persists uploads and hands back public URLs.
type FileStore interface {
	Save(kind storage.Kind, header *multipart.FileHeader) (string, error)
	Remove(publicURL string)
}

// notFound turns a missing row into a 404 naming the resource.
func notFound(err error, resource string) error {
	if isNoRows(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// uploadError reports rejected files as client errors.
func uploadError(err error, field string) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrEmptyFile):
		return apperrors.NewBadRequest(fmt.Sprintf("Invalid %s: %v", field, err))
	}
	return err
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
