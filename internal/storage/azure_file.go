package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/share"
	"go.uber.org/zap"
)

// AzureFileArchive implements FileArchive on an Azure Files share. Files are
// written into a single directory of the share.
type AzureFileArchive struct {
	client    *share.Client
	directory string
	logger    *zap.Logger
}

// NewAzureFileArchive connects to the share and creates the share and directory
// if needed. Azure Files only supports account-key auth here, so a connection
// string is required.
func NewAzureFileArchive(ctx context.Context, account AzureAccount, shareName, directory string, logger *zap.Logger) (*AzureFileArchive, error) {
	if !account.useConnectionString() {
		return nil, fmt.Errorf("azure file archive requires a storage connection string")
	}

	client, err := share.NewClientFromConnectionString(account.ConnectionString, shareName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create share client: %w", err)
	}

	if _, err := client.Create(ctx, nil); err != nil && !hasErrorCode(err, "ShareAlreadyExists") {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	if directory != "" {
		_, err := client.NewDirectoryClient(directory).Create(ctx, nil)
		if err != nil && !hasErrorCode(err, "ResourceAlreadyExists") {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	logger.Info("Azure File share initialized",
		zap.String("share", shareName),
		zap.String("directory", directory),
	)

	return &AzureFileArchive{client: client, directory: directory, logger: logger}, nil
}

// UploadFile creates (or overwrites) the file and uploads its contents
func (a *AzureFileArchive) UploadFile(ctx context.Context, name string, data io.Reader) error {
	buf, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("failed to read file contents: %w", err)
	}

	dir := a.client.NewRootDirectoryClient()
	if a.directory != "" {
		dir = a.client.NewDirectoryClient(a.directory)
	}
	fileClient := dir.NewFileClient(name)

	if _, err := fileClient.Create(ctx, int64(len(buf)), nil); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if len(buf) > 0 {
		if err := fileClient.UploadBuffer(ctx, buf, nil); err != nil {
			return fmt.Errorf("failed to upload file: %w", err)
		}
	}

	a.logger.Info("File uploaded to Azure File share",
		zap.String("file", name),
		zap.String("directory", a.directory),
		zap.Int("size", len(buf)),
	)
	return nil
}
