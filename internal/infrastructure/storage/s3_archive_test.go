package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraconfig "github.com/retailpos/backend/internal/infrastructure/config"
)

func TestNewS3ReceiptArchive_Validation(t *testing.T) {
	t.Run("nil config rejected", func(t *testing.T) {
		_, err := NewS3ReceiptArchive(nil)
		assert.Error(t, err)
	})

	t.Run("bucket required", func(t *testing.T) {
		_, err := NewS3ReceiptArchive(&infraconfig.StorageConfig{
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		})
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("credentials required", func(t *testing.T) {
		_, err := NewS3ReceiptArchive(&infraconfig.StorageConfig{
			Bucket: "receipts",
		})
		assert.ErrorContains(t, err, "credentials")
	})

	t.Run("endpoint without scheme accepted", func(t *testing.T) {
		archive, err := NewS3ReceiptArchive(&infraconfig.StorageConfig{
			Bucket:          "receipts",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Endpoint:        "minio.local:9000",
			UsePathStyle:    true,
		})
		require.NoError(t, err)
		assert.NotNil(t, archive)
	})
}

func TestS3ReceiptArchive_ObjectURL(t *testing.T) {
	t.Run("uses public base URL when configured", func(t *testing.T) {
		a := &S3ReceiptArchive{bucket: "receipts", publicBaseURL: "https://cdn.example.com"}
		assert.Equal(t, "https://cdn.example.com/receipts/POS-2026-00001.pdf", a.objectURL("receipts/POS-2026-00001.pdf"))
	})

	t.Run("falls back to s3 scheme", func(t *testing.T) {
		a := &S3ReceiptArchive{bucket: "receipts"}
		assert.Equal(t, "s3://receipts/receipts/POS-2026-00001.pdf", a.objectURL("receipts/POS-2026-00001.pdf"))
	})
}
