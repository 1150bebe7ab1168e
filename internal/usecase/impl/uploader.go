package impl

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	uploadOutcomeOK       = "ok"
	uploadOutcomeRejected = "rejected"
	uploadOutcomeFailed   = "failed"

	mimePDF = "application/pdf"
)

// uploader stores client files in object storage. Callers reference the returned URL in a
// row write only after the upload succeeded.
type uploader struct {
	storage service.ObjectStorage
	metrics service.MetricsRecorder
	logger  *slog.Logger
	now     func() time.Time
}

func newUploader(storage service.ObjectStorage, metrics service.MetricsRecorder, logger *slog.Logger) *uploader {
	return &uploader{
		storage: storage,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// uploadImage stores an image in the shared images bucket under folder.
func (u *uploader) uploadImage(ctx context.Context, folder string, file *entity.FileUpload) (string, error) {
	return u.upload(ctx, constants.BucketImages, file, false, func(ext string) string {
		return objectPath(folder, u.now(), ext)
	})
}

// uploadProductImage stores a product image in its own bucket.
func (u *uploader) uploadProductImage(ctx context.Context, file *entity.FileUpload) (string, error) {
	return u.upload(ctx, constants.BucketProductImage, file, false, func(ext string) string {
		return objectPath("", u.now(), ext)
	})
}

// uploadProof stores a seller's permit or ID, which may also be a PDF.
func (u *uploader) uploadProof(ctx context.Context, userID uuid.UUID, file *entity.FileUpload) (string, error) {
	return u.upload(ctx, constants.BucketSellerProofs, file, true, func(ext string) string {
		return userID.String() + "/" + strconv.FormatInt(u.now().UnixMilli(), 10) + "." + ext
	})
}

func (u *uploader) upload(ctx context.Context, bucket string, file *entity.FileUpload, allowPDF bool, pathFor func(ext string) string) (string, error) {
	log := deliverycontext.GetLoggerOrDefault(ctx, u.logger)

	detected := mimetype.Detect(file.Content)
	if !acceptedMIME(detected, allowPDF) {
		u.metrics.Upload(bucket, uploadOutcomeRejected)
		log.Warn("Rejected upload", slog.String("bucket", bucket), slog.String("mime", detected.String()))

		return "", domainerrors.ErrInvalidFileType.WrapMessage("unsupported content type " + detected.String())
	}

	path := pathFor(fileExtension(detected, file.Filename))

	url, err := u.storage.Upload(ctx, bucket, path, file.Content, detected.String())
	if err != nil {
		u.metrics.Upload(bucket, uploadOutcomeFailed)
		log.Error("Upload failed", slog.String("bucket", bucket), slog.String("path", path), slog.Any("error", err))

		return "", domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	u.metrics.Upload(bucket, uploadOutcomeOK)
	log.Debug("Uploaded file", slog.String("bucket", bucket), slog.String("path", path))

	return url, nil
}

func acceptedMIME(detected *mimetype.MIME, allowPDF bool) bool {
	if strings.HasPrefix(detected.String(), "image/") {
		return true
	}

	return allowPDF && detected.Is(mimePDF)
}

// fileExtension prefers the sniffed extension and falls back to the client's file name.
func fileExtension(detected *mimetype.MIME, filename string) string {
	if ext := strings.TrimPrefix(detected.Extension(), "."); ext != "" {
		return ext
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."); ext != "" {
		return ext
	}

	return "bin"
}

// objectPath builds {folder/}{unix millis}-{random base36}.{ext}.
func objectPath(folder string, now time.Time, ext string) string {
	name := strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(rand.Uint64(), 36) + "." + ext
	if folder == "" {
		return name
	}

	return folder + "/" + name
}
