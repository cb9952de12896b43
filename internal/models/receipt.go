package models

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	StoragePath string    `db:"storage_path"`
	UploadedAt  time.Time `db:"uploaded_at"`
}
