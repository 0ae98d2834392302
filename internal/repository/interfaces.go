package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/deptlens/internal/domain"
)

var ErrNoDataset = errors.New("no dataset has been imported")

// DatasetLoad records one import into the store.
type DatasetLoad struct {
	ID           string
	Source       string
	FacultyCount int
	RecordCount  int
	LoadedAt     time.Time
}

type DatasetRepo interface {
	// Load reads the stored dataset. An empty store yields an empty dataset.
	Load(ctx context.Context) (*domain.Dataset, error)
	// Replace swaps the stored dataset for ds in one transaction.
	Replace(ctx context.Context, ds *domain.Dataset, source string) (*DatasetLoad, error)
	// LastLoad returns the most recent import, or ErrNoDataset.
	LastLoad(ctx context.Context) (*DatasetLoad, error)
}
