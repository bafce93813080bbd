package model

import (
	"io"
	"os"
)

// RemoteAsset is the capability interface for records whose payload lives in
// remote object storage. The upload pipeline inspects every record staged for
// creation and acts only on those exposing this capability.
type RemoteAsset interface {
	// StagedAsset returns the pending payload, or nil when there is nothing
	// left to upload (already uploaded, or seeded with a pre-assigned key).
	StagedAsset() *StagedAsset
	// SetObjectKey records the storage key assigned at upload time.
	SetObjectKey(key string)
	// MarkPersisted records the outcome of the upload-then-commit cycle for
	// the caller to inspect. It is never stored durably.
	MarkPersisted(ok bool)
}

// StagedAsset holds an image payload spooled to local temp storage while it
// waits for the next commit cycle.
type StagedAsset struct {
	Filename    string
	ContentType string
	Size        int64
	SpoolPath   string
}

// StageAsset spools the payload to a temp file so the request body can be
// released before the commit cycle runs.
func StageAsset(r io.Reader, filename, contentType string, size int64) (*StagedAsset, error) {
	f, err := os.CreateTemp("", "foodjournal-upload-*")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return &StagedAsset{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		SpoolPath:   f.Name(),
	}, nil
}

// Open returns a reader over the spooled payload.
func (a *StagedAsset) Open() (*os.File, error) {
	return os.Open(a.SpoolPath)
}

// Discard releases the local spool file. Safe to call more than once.
func (a *StagedAsset) Discard() {
	if a.SpoolPath != "" {
		os.Remove(a.SpoolPath)
		a.SpoolPath = ""
	}
}
