package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/alexanderramin/deptlens/internal/db"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/alexanderramin/deptlens/internal/importer"
	"github.com/alexanderramin/deptlens/internal/mockdata"
	"github.com/alexanderramin/deptlens/internal/repository"
	"gopkg.in/yaml.v3"
)

// DatasetLocations configures where datasets are read from and imported to.
type DatasetLocations struct {
	File   string // explicit dataset file; wins over everything else
	DBPath string
}

type datasetService struct {
	loc      DatasetLocations
	openDB   func(path string) (*sql.DB, error)
	embedded func() (*domain.Dataset, error)
	observer UseCaseObserver
}

func NewDatasetService(loc DatasetLocations, observers ...UseCaseObserver) DatasetService {
	return &datasetService{
		loc:      loc,
		openDB:   db.OpenDB,
		embedded: mockdata.Dataset,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *datasetService) Load(ctx context.Context) (ds *domain.Dataset, src *DatasetSource, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "load-dataset", time.Now().UTC(), fields, &err)

	ds, src, err = s.resolve(ctx)
	if err != nil {
		return nil, nil, err
	}
	fields["source"] = string(src.Kind)
	fields["location"] = src.Location
	fields["records"] = ds.RecordCount()
	fields["faculty"] = len(ds.Faculty)
	return ds, src, nil
}

func (s *datasetService) resolve(ctx context.Context) (*domain.Dataset, *DatasetSource, error) {
	if s.loc.File != "" {
		ds, err := importer.LoadDatasetFile(s.loc.File)
		if err != nil {
			return nil, nil, fmt.Errorf("loading dataset file %s: %w", s.loc.File, err)
		}
		return ds, &DatasetSource{Kind: SourceFile, Location: s.loc.File}, nil
	}

	if s.loc.DBPath != "" && db.Exists(s.loc.DBPath) {
		ds, src, err := s.loadFromDB(ctx)
		if err == nil {
			return ds, src, nil
		}
		if !errors.Is(err, repository.ErrNoDataset) {
			return nil, nil, err
		}
	}

	ds, err := s.embedded()
	if err != nil {
		return nil, nil, err
	}
	return ds, &DatasetSource{Kind: SourceEmbedded, Location: "mock_data.yaml"}, nil
}

func (s *datasetService) loadFromDB(ctx context.Context) (*domain.Dataset, *DatasetSource, error) {
	database, err := s.openDB(s.loc.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset store: %w", err)
	}
	defer database.Close()

	repo := repository.NewSQLiteDatasetRepo(database)
	last, err := repo.LastLoad(ctx)
	if err != nil {
		return nil, nil, err
	}
	ds, err := repo.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading dataset store: %w", err)
	}
	return ds, &DatasetSource{
		Kind:     SourceSQLite,
		Location: s.loc.DBPath,
		LoadID:   last.ID,
		Origin:   last.Source,
		LoadedAt: last.LoadedAt,
	}, nil
}

func (s *datasetService) Import(ctx context.Context, path string) (load *repository.DatasetLoad, err error) {
	fields := map[string]any{"file": path, "db": s.loc.DBPath}
	defer observe(ctx, s.observer, "import-dataset", time.Now().UTC(), fields, &err)

	if s.loc.DBPath == "" {
		return nil, errors.New("no database path configured")
	}

	ds, err := importer.LoadDatasetFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset file: %w", err)
	}

	source := path
	if abs, absErr := filepath.Abs(path); absErr == nil {
		source = abs
	}

	database, err := s.openDB(s.loc.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening dataset store: %w", err)
	}
	defer database.Close()

	load, err = repository.NewSQLiteDatasetRepo(database).Replace(ctx, ds, source)
	if err != nil {
		return nil, fmt.Errorf("importing dataset: %w", err)
	}
	fields["load_id"] = load.ID
	fields["records"] = load.RecordCount
	return load, nil
}

func (s *datasetService) Validate(ctx context.Context, path string) (problems []error, err error) {
	fields := map[string]any{"file": path}
	defer observe(ctx, s.observer, "validate-dataset", time.Now().UTC(), fields, &err)

	schema, err := importer.LoadFile(path)
	if err != nil {
		return nil, err
	}
	problems = importer.ValidateSchema(schema)
	fields["problems"] = len(problems)
	return problems, nil
}

func (s *datasetService) Export(ctx context.Context, w io.Writer) (src *DatasetSource, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "export-dataset", time.Now().UTC(), fields, &err)

	ds, src, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	fields["source"] = string(src.Kind)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(importer.FromDataset(ds)); err != nil {
		return nil, fmt.Errorf("encoding dataset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding dataset: %w", err)
	}
	return src, nil
}
