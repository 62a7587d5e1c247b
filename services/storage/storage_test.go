package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.UploadResult), args.Error(1)
}

func (m *mockUploader) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uploader.DestroyResult), args.Error(1)
}

func TestUploadImage_UsesFolderAndPublicID(t *testing.T) {
	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/spa.png", mock.MatchedBy(func(p uploader.UploadParams) bool {
		return p.Folder == "bookingdesk/services" && p.PublicID == "img-spa" && p.Overwrite != nil && *p.Overwrite
	})).Return(&uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/img-spa.png"}, nil)

	svc := NewMediaService(up, "bookingdesk/services")
	url, err := svc.UploadImage(context.Background(), "/tmp/spa.png", "img-spa")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/img-spa.png", url)
	up.AssertExpectations(t)
}

func TestUploadImage_Errors(t *testing.T) {
	up := &mockUploader{}
	up.On("Upload", mock.Anything, "/tmp/a.png", mock.Anything).Return(nil, errors.New("timeout"))
	up.On("Upload", mock.Anything, "/tmp/b.png", mock.Anything).Return(&uploader.UploadResult{}, nil)

	svc := NewMediaService(up, "f")
	_, err := svc.UploadImage(context.Background(), "/tmp/a.png", "")
	assert.ErrorContains(t, err, "timeout")

	_, err = svc.UploadImage(context.Background(), "/tmp/b.png", "")
	assert.ErrorContains(t, err, "no secure URL")
}

func TestDeleteImage(t *testing.T) {
	up := &mockUploader{}
	up.On("Destroy", mock.Anything, uploader.DestroyParams{PublicID: "f/img-spa"}).Return(&uploader.DestroyResult{Result: "ok"}, nil)

	require.NoError(t, NewMediaService(up, "f").DeleteImage(context.Background(), "img-spa"))
	up.AssertExpectations(t)
}

func TestPublicIDFor(t *testing.T) {
	assert.Equal(t, "img-tours-x", PublicIDFor("/img/tours/x.png"))
	assert.Equal(t, "x", PublicIDFor("x.jpeg"))
}
