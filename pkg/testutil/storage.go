package testutil

import (
	"context"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/storage"
)

type MockStorage struct {
	Uploaded []*storage.UploadObject
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (s *MockStorage) Upload(ctx context.Context, object *storage.UploadObject) (*storage.UploadResponse, error) {
	s.Uploaded = append(s.Uploaded, object)
	return &storage.UploadResponse{
		Url:      "https://storage.example.com/" + object.Prefix + "/" + object.FileName,
		FileName: object.FileName,
	}, nil
}
