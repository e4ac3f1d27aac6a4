package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"go.uber.org/zap"
)

// AzureBlobPhotoStore implements PhotoStore on Azure Blob Storage. Returned URLs
// carry a read-only SAS token when the account key is available.
type AzureBlobPhotoStore struct {
	client        *azblob.Client
	containerName string
	sasExpiry     time.Duration
	logger        *zap.Logger
}

// NewAzureBlobPhotoStore connects to the account and ensures the container exists
func NewAzureBlobPhotoStore(ctx context.Context, account AzureAccount, containerName string, sasExpiry time.Duration, logger *zap.Logger) (*AzureBlobPhotoStore, error) {
	client, err := newBlobClient(account)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, containerName, nil)
	if err != nil && !hasErrorCode(err, "ContainerAlreadyExists") {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	logger.Info("Azure Blob Storage initialized",
		zap.String("container", containerName),
		zap.Duration("sas_expiry", sasExpiry),
	)

	return &AzureBlobPhotoStore{
		client:        client,
		containerName: containerName,
		sasExpiry:     sasExpiry,
		logger:        logger,
	}, nil
}

func newBlobClient(account AzureAccount) (*azblob.Client, error) {
	if account.useConnectionString() {
		return azblob.NewClientFromConnectionString(account.ConnectionString, nil)
	}
	url, err := account.serviceURL("blob")
	if err != nil {
		return nil, err
	}
	cred, err := account.credential()
	if err != nil {
		return nil, err
	}
	return azblob.NewClient(url, cred, nil)
}

// Upload stores the photo as blob <id> and returns its URL
func (s *AzureBlobPhotoStore) Upload(ctx context.Context, id string, data io.Reader) (string, error) {
	contentType, data := sniffContentType(data)
	reader := &countingReader{r: data}

	_, err := s.client.UploadStream(ctx, s.containerName, id, reader, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}

	blobClient := s.client.ServiceClient().NewContainerClient(s.containerName).NewBlobClient(id)
	url, err := blobClient.GetSASURL(sas.BlobPermissions{Read: true}, time.Now().UTC().Add(s.sasExpiry), nil)
	if err != nil {
		// Token credentials cannot sign; the plain URL works for public containers
		s.logger.Debug("Falling back to unsigned blob URL", zap.String("blobName", id), zap.Error(err))
		url = blobClient.URL()
	}

	s.logger.Info("Photo uploaded to Azure Blob Storage",
		zap.String("blobName", id),
		zap.String("container", s.containerName),
		zap.String("contentType", contentType),
		zap.Int64("size", reader.count),
	)

	return url, nil
}

// sniffContentType reads ahead far enough to detect the content type and
// returns a reader that still yields every byte of data
func sniffContentType(data io.Reader) (string, io.Reader) {
	br := bufio.NewReaderSize(data, 512)
	head, _ := br.Peek(512)
	return http.DetectContentType(head), br
}

// countingReader wraps an io.Reader and counts the number of bytes read
type countingReader struct {
	r     io.Reader
	count int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

// Delete removes the blob a photo URL points at. The SAS query, if any, is ignored.
func (s *AzureBlobPhotoStore) Delete(ctx context.Context, url string) error {
	parts, err := azblob.ParseURL(url)
	if err != nil {
		return fmt.Errorf("failed to parse photo url: %w", err)
	}
	if parts.BlobName == "" {
		return fmt.Errorf("photo url %q does not name a blob", url)
	}

	_, err = s.client.DeleteBlob(ctx, parts.ContainerName, parts.BlobName, nil)
	if err != nil {
		if hasErrorCode(err, "BlobNotFound") {
			s.logger.Debug("Blob already deleted or not found",
				zap.String("blobName", parts.BlobName),
				zap.String("container", parts.ContainerName),
			)
			return nil
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	s.logger.Info("Photo deleted from Azure Blob Storage",
		zap.String("blobName", parts.BlobName),
		zap.String("container", parts.ContainerName),
	)
	return nil
}
