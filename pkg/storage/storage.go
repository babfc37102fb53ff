package storage

import (
	"context"
	"path"
)

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
	BulkUpload(context.Context, []*UploadObject) ([]*UploadResponse, error)
}

type UploadObject struct {
	Bucket   string
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

// Key is the object key inside the bucket.
func (o *UploadObject) Key() string {
	return path.Join(o.Prefix, o.FileName)
}

type UploadResponse struct {
	Url      string
	FileName string
}
