package ports

import "context"

// Uploader pushes a local file to the public asset host and returns the URL
// it will be served from. The integration is opaque to the core: upload a
// file, get back a public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, file FileUpload) (string, error)
}
