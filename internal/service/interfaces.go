package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/repository"
)

// SourceKind names where a dataset was loaded from.
type SourceKind string

const (
	SourceFile     SourceKind = "file"
	SourceSQLite   SourceKind = "sqlite"
	SourceEmbedded SourceKind = "embedded"
)

// DatasetSource describes the dataset that Load returned.
type DatasetSource struct {
	Kind     SourceKind
	Location string
	// Set for SourceSQLite only.
	LoadID   string
	Origin   string
	LoadedAt time.Time
}

type DatasetService interface {
	// Load resolves the dataset: an explicit file, then the SQLite store if
	// it holds an import, then the embedded mock data.
	Load(ctx context.Context) (*domain.Dataset, *DatasetSource, error)
	// Import validates a dataset file and replaces the SQLite store with it.
	Import(ctx context.Context, path string) (*repository.DatasetLoad, error)
	// Validate returns every problem found in a dataset file. The error is
	// non-nil only when the file cannot be read or parsed.
	Validate(ctx context.Context, path string) ([]error, error)
	// Export writes the resolved dataset as YAML.
	Export(ctx context.Context, w io.Writer) (*DatasetSource, error)
}
