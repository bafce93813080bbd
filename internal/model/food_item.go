package model

import "time"

// FoodItem stores one uploaded dish photo with its metadata. The image bytes
// live in remote object storage under ImageKey; the row is only ever durable
// when the upload succeeded in the same create cycle.
type FoodItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:80;not null"`
	Comment   string    `json:"comment,omitempty" gorm:"size:200"`
	ImageKey  string    `json:"image_key" gorm:"uniqueIndex;size:100;not null"` // immutable after creation
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Public    bool      `json:"public" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// Persisted reports whether the last create attempt reached durable
	// storage. Transient, for the caller only.
	Persisted bool `json:"persisted" gorm:"-"`

	staged *StagedAsset `gorm:"-"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// AttachAsset stages an image payload for the next create cycle.
func (f *FoodItem) AttachAsset(a *StagedAsset) { f.staged = a }

// StagedAsset implements RemoteAsset.
func (f *FoodItem) StagedAsset() *StagedAsset { return f.staged }

// SetObjectKey implements RemoteAsset.
func (f *FoodItem) SetObjectKey(key string) {
	f.ImageKey = key
	f.staged = nil
}

// MarkPersisted implements RemoteAsset.
func (f *FoodItem) MarkPersisted(ok bool) { f.Persisted = ok }
