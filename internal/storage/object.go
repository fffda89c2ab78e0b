package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

type objectClient interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*UploadInfo, error)
	ReadObject(ctx context.Context, objectKey string) ([]byte, error)
}

// Object 将每个键保存为 Bucket 中的 documents/<key>.json 对象。
type Object struct {
	client objectClient
}

func NewObject(client *Client) *Object {
	return &Object{client: client}
}

func documentObjectKey(key string) string {
	return "documents/" + unsafeKeyChars.ReplaceAllString(key, "_") + ".json"
}

func (o *Object) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := o.client.ReadObject(ctx, documentObjectKey(key))
	if err != nil {
		if IsNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (o *Object) Set(ctx context.Context, key string, value []byte) error {
	if _, err := o.client.UploadFile(ctx, documentObjectKey(key), bytes.NewReader(value), int64(len(value)), "application/json"); err != nil {
		return fmt.Errorf("store document object: %w", err)
	}
	return nil
}
