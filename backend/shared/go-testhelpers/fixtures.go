package testhelpers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/staynest/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// TinyPNG is a valid 1x1 PNG.
var TinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0xf8, 0xcf, 0xc0, 0xf0,
	0x1f, 0x00, 0x05, 0x00, 0x01, 0xff, 0x89, 0x99, 0x3d, 0x1d, 0x00, 0x00,
	0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// UploadFile is one file part of a multipart request.
type UploadFile struct {
	Field    string
	Name     string
	Contents []byte
}

// MultipartBody encodes fields and files, returning the body and its
// Content-Type header value.
func MultipartBody(t *testing.T, fields map[string]string, files ...UploadFile) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Contents)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

// UniqueEmail returns an address no other test run will produce.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s+%s@example.com", prefix, utils.RandomString(6))
}
