package sync

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fediblock-sync/core/storage/mocks"
	"fediblock-sync/feature/blocklist/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchiveSnapshotUploadsToExistingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "blocklists").Return(true, nil)
	client.On("PutObject", mock.Anything, "blocklists", "snapshots/merged.csv",
		mock.Anything, int64(4), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/csv"
		})).Return(minio.UploadInfo{}, nil)

	arc := NewSnapshotArchiver(client, "blocklists")
	err := arc.ArchiveSnapshot(context.Background(), "snapshots/merged.csv", []byte("data"))
	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiveSnapshotCreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "blocklists").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "blocklists", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "blocklists", "snapshots/merged.csv",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	arc := NewSnapshotArchiver(client, "blocklists")
	err := arc.ArchiveSnapshot(context.Background(), "snapshots/merged.csv", []byte("data"))
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArchiveSnapshotUploadError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "blocklists").Return(true, nil)
	client.On("PutObject", mock.Anything, "blocklists", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, errors.New("connection refused"))

	arc := NewSnapshotArchiver(client, "blocklists")
	err := arc.ArchiveSnapshot(context.Background(), "snapshots/merged.csv", []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshots/merged.csv")
}

func TestRenderCSV(t *testing.T) {
	entries := []models.BlockEntry{
		{Domain: "zeta.example", Severity: models.SeveritySilence},
		{Domain: "alpha.example", Severity: models.SeveritySuspend, PublicComment: "spam"},
	}

	data, err := renderCSV(entries, false)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "domain,severity,public_comment")
	// Rows come out sorted by domain.
	assert.Less(t, strings.Index(out, "alpha.example"), strings.Index(out, "zeta.example"))
}
