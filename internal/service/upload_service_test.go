package service

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadFixture(t *testing.T) (IUploadService, unitofwork.RepositoryFactory, string) {
	factory := newTestFactory(t)
	dir := t.TempDir()
	svc := NewUploadService(factory, config.UploadConfig{
		Dir:          dir,
		MaxImageSize: 1 << 20,
		MaxVideoSize: 2 << 20,
	}, "http://localhost:3000", testLogger(t))
	return svc, factory, dir
}

// Minimal playable-enough mp4: an ftyp box followed by moov/mvhd carrying
// the given timescale and duration.
func testMP4(timescale, duration uint32) []byte {
	mvhd := make([]byte, 8+20)
	binary.BigEndian.PutUint32(mvhd[:4], uint32(len(mvhd)))
	copy(mvhd[4:8], "mvhd")
	binary.BigEndian.PutUint32(mvhd[20:24], timescale)
	binary.BigEndian.PutUint32(mvhd[24:28], duration)

	moov := make([]byte, 8, 8+len(mvhd))
	binary.BigEndian.PutUint32(moov[:4], uint32(8+len(mvhd)))
	copy(moov[4:8], "moov")
	moov = append(moov, mvhd...)

	ftyp := make([]byte, 16)
	binary.BigEndian.PutUint32(ftyp[:4], 16)
	copy(ftyp[4:8], "ftyp")
	copy(ftyp[8:16], "isom0000")

	return append(ftyp, moov...)
}

func TestUploadBase64Image(t *testing.T) {
	svc, factory, dir := newUploadFixture(t)
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	payload := []byte("fake png bytes")
	res, err := svc.SaveBase64(ctx, user.Id, &dto.Base64UploadRequest{
		Filename: "avatar.PNG",
		Data:     base64.StdEncoding.EncodeToString(payload),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.FileTypeImage), res.FileType)
	assert.True(t, strings.HasPrefix(res.URL, "http://localhost:3000/uploads/"), res.URL)
	assert.Zero(t, res.Duration)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(res.URL)))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	uow := factory.NewUnitOfWork(ctx)
	record, err := uow.UploadedFileRepository().FindByURL(ctx, res.URL)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, user.Id, record.UserId)
	assert.EqualValues(t, len(payload), record.SizeBytes)
}

func TestUploadBase64AcceptsDataURI(t *testing.T) {
	svc, factory, _ := newUploadFixture(t)
	user := createTestUser(t, factory, 0)

	res, err := svc.SaveBase64(context.Background(), user.Id, &dto.Base64UploadRequest{
		Filename: "canvas.png",
		Data:     "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.FileTypeImage), res.FileType)
}

func TestUploadVideoProbesDuration(t *testing.T) {
	svc, factory, _ := newUploadFixture(t)
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	// 7400 units at a 1000Hz timescale is 7.4 seconds.
	res, err := svc.SaveBase64(ctx, user.Id, &dto.Base64UploadRequest{
		Filename: "reference.mp4",
		Data:     base64.StdEncoding.EncodeToString(testMP4(1000, 7400)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.FileTypeVideo), res.FileType)
	assert.InDelta(t, 7.4, res.Duration, 0.001)

	uow := factory.NewUnitOfWork(ctx)
	record, err := uow.UploadedFileRepository().FindByURL(ctx, res.URL)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.InDelta(t, 7.4, record.DurationSecs, 0.001)
}

func TestUploadUnreadableVideoStoresZeroDuration(t *testing.T) {
	svc, factory, _ := newUploadFixture(t)
	user := createTestUser(t, factory, 0)

	res, err := svc.SaveBase64(context.Background(), user.Id, &dto.Base64UploadRequest{
		Filename: "broken.mp4",
		Data:     base64.StdEncoding.EncodeToString([]byte("not an mp4 at all")),
	})
	require.NoError(t, err)
	assert.Zero(t, res.Duration)
}

func TestUploadRejections(t *testing.T) {
	svc, factory, _ := newUploadFixture(t)
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.Base64UploadRequest
	}{
		{
			name: "unsupported extension",
			req:  dto.Base64UploadRequest{Filename: "notes.txt", Data: base64.StdEncoding.EncodeToString([]byte("x"))},
		},
		{
			name: "bad base64",
			req:  dto.Base64UploadRequest{Filename: "a.png", Data: "%%% not base64 %%%"},
		},
		{
			name: "image over size limit",
			req:  dto.Base64UploadRequest{Filename: "big.png", Data: base64.StdEncoding.EncodeToString(make([]byte, (1<<20)+1))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveBase64(ctx, user.Id, &tt.req)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
		})
	}
}
