// Package upload validates, re-encodes and stores uploaded images.
package upload

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/k1r/imgstore/internal/apperror"
	"github.com/k1r/imgstore/internal/content"
	"github.com/k1r/imgstore/internal/metrics"
	"github.com/k1r/imgstore/internal/storage"
	"github.com/k1r/imgstore/internal/transcode"
)

// DefaultQuality is used when the client does not send a quality value.
const DefaultQuality = 80

// Client-facing messages.
const (
	MsgNoFile          = "no file selected"
	MsgUnsupportedType = "unsupported file type"
	MsgInvalidQuality  = "quality must be an integer between 0 and 100"
	MsgUploadFailed    = "upload to object storage failed, check the storage configuration"
	MsgMissingPath     = "missing required parameter: storage_path"
	MsgDeleteFailed    = "failed to delete file, please try again later"
	MsgDeleted         = "file deleted successfully"
)

const bytesPerMB = 1024 * 1024

// Request is a single upload as received from the client.
type Request struct {
	Data     []byte
	Filename string
	Compress bool
	Quality  int
}

// Result describes a stored image.
type Result struct {
	Success        bool    `json:"success" example:"true"`
	OriginalSizeMB float64 `json:"original_size_mb" example:"3.42"`
	FinalSizeMB    float64 `json:"final_size_mb" example:"0.87"`
	Digest         string  `json:"md5_hash" example:"65a8e27d8879283831b664bd8b7f0ad4"`
	StorageKey     string  `json:"storage_path" example:"img/2024/05/65a8e27d8879283831b664bd8b7f0ad4.jpg"`
	PublicURL      string  `json:"image_url" example:"https://static.k1r.in/img/2024/05/65a8e27d8879283831b664bd8b7f0ad4.jpg"`
	Compressed     bool    `json:"compressed" example:"true"`
	QualityUsed    *int    `json:"compression_quality" example:"80"`
}

// TranscodeFunc re-encodes data in the given format.
type TranscodeFunc func(data []byte, quality int, format transcode.Format) ([]byte, error)

// Service orchestrates the upload and delete flows.
type Service struct {
	store     storage.Storage
	paths     content.Paths
	maxBytes  int64
	timeout   time.Duration
	now       func() time.Time
	transcode TranscodeFunc
	log       zerolog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the clock used to partition storage keys by month.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTranscoder replaces the image re-encoder.
func WithTranscoder(fn TranscodeFunc) Option {
	return func(s *Service) { s.transcode = fn }
}

// NewService creates a Service. maxBytes caps the original upload size and
// timeout bounds every store call; zero disables the bound.
func NewService(store storage.Storage, paths content.Paths, maxBytes int64, timeout time.Duration, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		paths:     paths,
		maxBytes:  maxBytes,
		timeout:   timeout,
		now:       time.Now,
		transcode: transcode.Transcode,
		log:       log.With().Str("component", "upload").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBytes returns the largest accepted upload in bytes.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// ParseQuality reads the optional quality form value. Empty means DefaultQuality.
func ParseQuality(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultQuality, nil
	}
	q, err := strconv.Atoi(raw)
	if err != nil || q < 0 || q > 100 {
		return 0, apperror.Validation(MsgInvalidQuality)
	}
	return q, nil
}

// ParseCompress reports whether the compress form value enables re-encoding.
func ParseCompress(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}

// Upload validates req, optionally re-encodes it, and stores the final bytes
// under a content-addressed key.
func (s *Service) Upload(ctx context.Context, req Request) (*Result, error) {
	if req.Filename == "" {
		return nil, apperror.Validation(MsgNoFile)
	}
	if !content.Allowed(req.Filename) {
		return nil, apperror.Validation(MsgUnsupportedType)
	}
	if int64(len(req.Data)) > s.maxBytes {
		return nil, apperror.Validation(s.tooLargeMessage())
	}

	ext := content.Extension(req.Filename)
	data := req.Data
	req.Data = nil
	originalSize := len(data)

	var err error
	defer func() {
		metrics.RecordUpload(ext, req.Compress, err == nil, originalSize, len(data))
	}()

	if req.Compress {
		var out []byte
		out, err = s.runTranscode(data, req.Quality, formatFor(ext))
		if err != nil {
			return nil, apperror.Transcode(err)
		}
		// The pre-transcode buffer is unreachable from here on.
		data = out
	}

	digest := content.Digest(data)
	key := s.paths.Key(digest, ext, s.now())

	if err = s.put(ctx, key, data, content.ContentType(ext)); err != nil {
		return nil, apperror.Store(MsgUploadFailed, err)
	}

	res := &Result{
		Success:        true,
		OriginalSizeMB: sizeMB(originalSize),
		FinalSizeMB:    sizeMB(len(data)),
		Digest:         digest,
		StorageKey:     key,
		PublicURL:      s.paths.PublicURL(key),
		Compressed:     req.Compress,
	}
	if req.Compress {
		q := req.Quality
		res.QualityUsed = &q
	}

	s.log.Info().
		Str("key", key).
		Float64("original_mb", res.OriginalSizeMB).
		Float64("final_mb", res.FinalSizeMB).
		Bool("compressed", req.Compress).
		Msg("image stored")
	return res, nil
}

// Delete removes the object at key. Deleting a missing key succeeds.
func (s *Service) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperror.Validation(MsgMissingPath)
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.store.Delete(ctx, key); err != nil {
		return apperror.Store(MsgDeleteFailed, err)
	}
	s.log.Info().Str("key", key).Msg("image deleted")
	return nil
}

func (s *Service) runTranscode(data []byte, quality int, format transcode.Format) ([]byte, error) {
	start := time.Now()
	out, err := s.transcode(data, quality, format)
	metrics.RecordTranscode(format.String(), err == nil, time.Since(start).Seconds())
	return out, err
}

// put uploads data; the caller drops its reference to data once put returns.
func (s *Service) put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.store.Upload(ctx, key, data, contentType)
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Service) tooLargeMessage() string {
	return fmt.Sprintf("file too large, maximum is %d MB", s.maxBytes/bytesPerMB)
}

func formatFor(ext string) transcode.Format {
	if content.IsJPEG(ext) {
		return transcode.JPEG
	}
	return transcode.PNG
}

func sizeMB(n int) float64 {
	return math.Round(float64(n)/bytesPerMB*100) / 100
}
