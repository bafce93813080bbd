package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	apperrors "foodjournal/internal/errors"
	"foodjournal/internal/model"
	"foodjournal/internal/storage"
)

const callbackName = "foodjournal:remote_asset"

// Coordinator pairs "image durably stored remotely" with "metadata row durably
// stored locally". It hooks the create pipeline so that a staged record is
// uploaded immediately before its INSERT; when the upload fails the INSERT is
// vetoed and the record is discarded, without poisoning the surrounding
// transaction. Exactly one upload attempt is made per staged record per create
// cycle.
type Coordinator struct {
	store   storage.ObjectStore
	timeout time.Duration
}

// NewCoordinator builds a coordinator over the given object store. timeout
// bounds each remote upload call.
func NewCoordinator(store storage.ObjectStore, timeout time.Duration) *Coordinator {
	return &Coordinator{store: store, timeout: timeout}
}

// Register installs the coordinator as a create callback. Called once at
// process start; the persistence layer invokes it for every staged record.
func (c *Coordinator) Register(db *gorm.DB) error {
	return db.Callback().Create().Before("gorm:create").Register(callbackName, c.beforeCreate)
}

// beforeCreate runs for every record staged for creation and acts only on
// those exposing the RemoteAsset capability with a pending payload.
func (c *Coordinator) beforeCreate(db *gorm.DB) {
	asset, ok := db.Statement.Dest.(model.RemoteAsset)
	if !ok {
		return
	}
	staged := asset.StagedAsset()
	if staged == nil {
		return
	}
	// The spool file is released whether the attempt succeeds or not.
	defer staged.Discard()

	key := storage.DeriveKey(staged.Filename)

	f, err := staged.Open()
	if err != nil {
		asset.MarkPersisted(false)
		db.AddError(fmt.Errorf("%w: open spool: %v", apperrors.ErrUploadTransport, err))
		return
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(db.Statement.Context, c.timeout)
	defer cancel()

	if err := c.store.Put(ctx, key, f, staged.Size, staged.ContentType); err != nil {
		asset.MarkPersisted(false)
		log.Printf("upload of %q discarded: %v", staged.Filename, err)
		db.AddError(err)
		return
	}

	asset.SetObjectKey(key)
	asset.MarkPersisted(true)
}

// IsDiscard reports whether err is a terminal upload failure that discards
// the staged record but must not abort the caller's request.
func IsDiscard(err error) bool {
	return errors.Is(err, apperrors.ErrUploadParam) || errors.Is(err, apperrors.ErrUploadTransport)
}
