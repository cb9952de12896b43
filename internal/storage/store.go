package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instabudget/pkg/config"
)

// LocalStore keeps uploaded receipt images and voice notes on disk under
// the configured uploads directory. Keys look like user-<uid>/<uuid>.<ext>
// and double as the public path under /uploads.
type LocalStore struct {
	baseDir string
	logger  *zap.Logger
}

func NewLocalStore(cfg *config.StorageConfig, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &LocalStore{
		baseDir: cfg.UploadDir,
		logger:  logger,
	}, nil
}

func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// BuildKey derives the storage key for a new upload. The original
// filename only contributes its extension.
func (s *LocalStore) BuildKey(userID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("user-%s/%s%s", userID.String(), uuid.New().String(), ext)
}

func (s *LocalStore) Save(key string, data []byte) error {
	path := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.logger.Debug("Stored upload", zap.String("key", key), zap.Int("size", len(data)))
	return nil
}

func (s *LocalStore) Read(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, key))
}

func (s *LocalStore) Delete(key string) error {
	return os.Remove(filepath.Join(s.baseDir, key))
}
