package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type putCall struct {
	bucket, key string
	body        []byte
	opts        minio.PutObjectOptions
}

type fakeObjects struct {
	existing map[string]bool
	statErr  error
	putErr   error
	stats    int
	puts     []putCall
}

func (f *fakeObjects) StatObject(_ context.Context, bucket, key string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	f.stats++
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	if f.existing[bucket+"/"+key] {
		return minio.ObjectInfo{Key: key}, nil
	}
	return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
}

func (f *fakeObjects) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, _ := io.ReadAll(r)
	f.puts = append(f.puts, putCall{bucket: bucket, key: key, body: body, opts: opts})
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size, ETag: "etag"}, nil
}

var testCfg = config.StorageConfig{Bucket: "waste-bucket", PathPrefix: "wasteMaterialImage", CacheMaxAge: 3600}

func newTestStorage(objects objectAPI, failures *prometheus.CounterVec, log *logger.Logger) *ImageStorage {
	s := newImageStorage(objects, testCfg, "http://cdn.local/", failures, log)
	s.newName = func() string { return "11111111-2222-3333-4444-555555555555" }
	return s
}

func newFailureCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "image_upload_failures_total"}, []string{"stage"})
}

func TestUpload_Success(t *testing.T) {
	objects := &fakeObjects{}
	s := newTestStorage(objects, nil, logger.NewNop())

	stored, err := s.Upload(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", stored.ImageName)
	assert.Equal(t, "http://cdn.local/waste-bucket/wasteMaterialImage/11111111-2222-3333-4444-555555555555", stored.ImageURL)
	require.Len(t, objects.puts, 1)
	assert.Equal(t, "waste-bucket", objects.puts[0].bucket)
	assert.Equal(t, []byte("hello"), objects.puts[0].body)
	assert.Equal(t, "image/png", objects.puts[0].opts.ContentType)
	assert.Equal(t, "max-age=3600", objects.puts[0].opts.CacheControl)
}

func TestUpload_EmptyInputMakesNoCall(t *testing.T) {
	objects := &fakeObjects{}
	s := newTestStorage(objects, nil, logger.NewNop())

	for _, in := range []string{"", "   "} {
		stored, err := s.Upload(context.Background(), in)
		assert.NoError(t, err)
		assert.Nil(t, stored)
		assert.Nil(t, s.Store(context.Background(), in))
	}
	assert.Zero(t, objects.stats)
	assert.Empty(t, objects.puts)
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		objects *fakeObjects
		input   string
		stage   domain.UploadStage
		target  error
	}{
		{"missing base64 marker", &fakeObjects{}, "data:image/png,hello", domain.UploadStageDecode, domain.ErrInvalidDataURI},
		{"existing object", &fakeObjects{existing: map[string]bool{"waste-bucket/wasteMaterialImage/11111111-2222-3333-4444-555555555555": true}}, "data:image/png;base64,aGVsbG8=", domain.UploadStageStat, domain.ErrObjectExists},
		{"stat failure", &fakeObjects{statErr: minio.ErrorResponse{Code: "AccessDenied"}}, "data:image/png;base64,aGVsbG8=", domain.UploadStageStat, nil},
		{"put failure", &fakeObjects{putErr: errors.New("connection reset")}, "data:image/png;base64,aGVsbG8=", domain.UploadStagePut, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(tt.objects, nil, logger.NewNop())
			stored, err := s.Upload(context.Background(), tt.input)
			assert.Nil(t, stored)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpload)

			var uerr *domain.UploadError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, tt.stage, uerr.Stage)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Empty(t, tt.objects.puts)
		})
	}
}

func TestStore_DegradesAndSignals(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	failures := newFailureCounter()
	s := newTestStorage(&fakeObjects{putErr: errors.New("connection reset")}, failures, logger.FromZap(zap.New(core)))

	stored := s.Store(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	assert.Nil(t, stored)

	errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorLogs, 1)
	assert.Equal(t, "put", errorLogs[0].ContextMap()["stage"])
	assert.Equal(t, 1.0, testutil.ToFloat64(failures.WithLabelValues("put")))
	assert.Equal(t, 0.0, testutil.ToFloat64(failures.WithLabelValues("decode")))
}

func TestStore_SuccessIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	failures := newFailureCounter()
	s := newTestStorage(&fakeObjects{}, failures, logger.FromZap(zap.New(core)))

	stored := s.Store(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	require.NotNil(t, stored)
	assert.Empty(t, logs.FilterLevelExact(zapcore.ErrorLevel).All())
	assert.Equal(t, 0, testutil.CollectAndCount(failures))
}
