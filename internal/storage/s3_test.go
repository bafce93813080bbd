package storage

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	apperrors "foodjournal/internal/errors"
)

func TestClassifyPutError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name: "client fault becomes param error",
			err: &smithy.GenericAPIError{
				Code:    "InvalidArgument",
				Message: "bad key",
				Fault:   smithy.FaultClient,
			},
			expected: apperrors.ErrUploadParam,
		},
		{
			name: "server fault becomes transport error",
			err: &smithy.GenericAPIError{
				Code:    "InternalError",
				Message: "try again",
				Fault:   smithy.FaultServer,
			},
			expected: apperrors.ErrUploadTransport,
		},
		{
			name:     "plain connectivity error becomes transport error",
			err:      errors.New("dial tcp: connection refused"),
			expected: apperrors.ErrUploadTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyPutError(tt.err), tt.expected)
		})
	}
}

func TestObjectURL(t *testing.T) {
	s := &S3Store{bucket: "foodjournal-images", urlTemplate: "https://%s.s3.amazonaws.com/%s"}
	assert.Equal(t,
		"https://foodjournal-images.s3.amazonaws.com/abc-tacos.jpg",
		s.ObjectURL("abc-tacos.jpg"))
}
