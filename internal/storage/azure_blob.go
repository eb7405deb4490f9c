package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// AzureBlobStorage archives objects in a single Azure blob container.
type AzureBlobStorage struct {
	client    *azblob.Client
	endpoint  string
	container string
}

func NewAzureBlobStorage(endpoint, accountName, accountKey, container string) (*AzureBlobStorage, error) {
	if endpoint == "" || accountName == "" || accountKey == "" {
		return nil, fmt.Errorf("azure blob: missing endpoint or credentials")
	}
	if container == "" {
		return nil, fmt.Errorf("azure blob: container not configured")
	}
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure blob: credential error: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure blob: client init failed: %w", err)
	}
	return &AzureBlobStorage{
		client:    client,
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		container: container,
	}, nil
}

func (s *AzureBlobStorage) Upload(ctx context.Context, obj *Object) (*Location, error) {
	if err := ValidateObject(obj); err != nil {
		return nil, err
	}

	blobName, err := sanitizeBlobPath(obj.Name)
	if err != nil {
		return nil, err
	}

	options := &azblob.UploadStreamOptions{}
	if obj.ContentType != "" {
		options.HTTPHeaders = &blob.HTTPHeaders{
			BlobContentType: &obj.ContentType,
		}
	}

	if _, err := s.client.UploadStream(ctx, s.container, blobName, obj.Reader, options); err != nil {
		return nil, fmt.Errorf("azure blob: upload failed: %w", err)
	}

	loc := &Location{
		Path: blobName,
		URL:  fmt.Sprintf("%s/%s/%s", s.endpoint, s.container, blobName),
	}
	return loc, nil
}

func (s *AzureBlobStorage) Download(ctx context.Context, loc *Location) (*DownloadResult, error) {
	if err := ValidateLocation(loc); err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, s.container, loc.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("azure blob: download failed: %w", err)
	}

	contentType := ""
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}

	size := int64(0)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}

	return &DownloadResult{
		Reader:      resp.Body,
		ContentType: contentType,
		Size:        size,
	}, nil
}

func sanitizeBlobPath(name string) (string, error) {
	clean := path.Clean(name)
	if clean == "." || clean == "/" {
		return "", fmt.Errorf("azure blob: invalid blob name")
	}
	if strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("azure blob: path traversal detected")
	}
	return clean, nil
}
