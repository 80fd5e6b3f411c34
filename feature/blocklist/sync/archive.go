package sync

import (
	"bytes"
	"context"
	"fmt"

	"fediblock-sync/core/storage"
	"fediblock-sync/feature/blocklist/models"
	"fediblock-sync/feature/blocklist/sources"

	"github.com/minio/minio-go/v7"
)

// SnapshotArchiver uploads merged blocklist snapshots to an S3-compatible
// bucket, creating the bucket on first use.
type SnapshotArchiver struct {
	client storage.Client
	bucket string
}

// NewSnapshotArchiver wraps a storage client and target bucket.
func NewSnapshotArchiver(client storage.Client, bucket string) *SnapshotArchiver {
	return &SnapshotArchiver{client: client, bucket: bucket}
}

// ArchiveSnapshot uploads one CSV snapshot under the given object name.
func (a *SnapshotArchiver) ArchiveSnapshot(ctx context.Context, name string, data []byte) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
	}

	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("upload snapshot %s: %w", name, err)
	}
	return nil
}

// renderCSV serializes entries to the tabular format in memory.
func renderCSV(entries []models.BlockEntry, includePrivate bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := sources.WriteCSV(&buf, entries, includePrivate); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
