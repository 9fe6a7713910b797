package storage

import (
	"fmt"

	"contract-claim-system/internal/config"
)

func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case "local":
		return NewLocalStorage(cfg.Storage.Local.Root)
	case "s3", "":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
