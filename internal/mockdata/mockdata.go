// Package mockdata embeds the department dataset used when no other source
// is configured.
package mockdata

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/importer"
)

//go:embed mock_data.yaml
var raw []byte

var load = sync.OnceValues(func() (*domain.Dataset, error) {
	ds, err := importer.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding embedded dataset: %w", err)
	}
	return ds, nil
})

// Dataset returns the embedded dataset. The result is shared; callers must
// not modify it.
func Dataset() (*domain.Dataset, error) {
	return load()
}

// MustDataset is Dataset for tests and fixtures.
func MustDataset() *domain.Dataset {
	ds, err := Dataset()
	if err != nil {
		panic(err)
	}
	return ds
}
