package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/deptlens/internal/db"
	"github.com/alexanderramin/deptlens/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SQLiteDatasetRepo implements DatasetRepo using a SQLite database.
type SQLiteDatasetRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

func NewSQLiteDatasetRepo(database *sql.DB) *SQLiteDatasetRepo {
	return &SQLiteDatasetRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// NewSQLiteDatasetRepoWithUoW lets callers supply the transaction boundary
// used by Replace.
func NewSQLiteDatasetRepoWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteDatasetRepo {
	return &SQLiteDatasetRepo{db: database, uow: uow}
}

// timeLayout is fixed-width so loaded_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Load reads the five tables concurrently. Faculty are ordered by id,
// records by their import position.
func (r *SQLiteDatasetRepo) Load(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ds.Faculty, err = r.loadFaculty(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Publications, err = r.loadPublications(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Projects, err = r.loadProjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Patents, err = r.loadPatents(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Events, err = r.loadEvents(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *SQLiteDatasetRepo) loadFaculty(ctx context.Context) ([]domain.Faculty, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM faculty ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing faculty: %w", err)
	}
	defer rows.Close()

	out := []domain.Faculty{}
	for rows.Next() {
		var f domain.Faculty
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("scanning faculty: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SQLiteDatasetRepo) loadPublications(ctx context.Context) ([]domain.Publication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.seq, p.year, p.count, p.type, p.indexing, rf.faculty_id
		FROM publications p
		LEFT JOIN record_faculty rf ON rf.kind = ? AND rf.record_id = p.seq
		ORDER BY p.seq, rf.position`, db.KindPublication)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	out, err := foldRows(rows,
		func(p *domain.Publication, fid *sql.NullInt64) (int64, error) {
			var seq int64
			var typ, idx string
			if err := rows.Scan(&seq, &p.Year, &p.Count, &typ, &idx, fid); err != nil {
				return 0, fmt.Errorf("scanning publication: %w", err)
			}
			p.Type, p.Indexing = domain.PublicationType(typ), domain.Indexing(idx)
			return seq, nil
		},
		func(p *domain.Publication) *[]int { return &p.FacultyIDs })
	if err != nil {
		return nil, fmt.Errorf("reading publications: %w", err)
	}
	return out, nil
}

func (r *SQLiteDatasetRepo) loadProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.year, p.status, p.funding, rf.faculty_id
		FROM projects p
		LEFT JOIN record_faculty rf ON rf.kind = ? AND rf.record_id = p.id
		ORDER BY p.seq, p.id, rf.position`, db.KindProject)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	out, err := foldRows(rows,
		func(p *domain.Project, fid *sql.NullInt64) (int64, error) {
			var status string
			if err := rows.Scan(&p.ID, &p.Year, &status, &p.Funding, fid); err != nil {
				return 0, fmt.Errorf("scanning project: %w", err)
			}
			p.Status = domain.ProjectStatus(status)
			return int64(p.ID), nil
		},
		func(p *domain.Project) *[]int { return &p.FacultyIDs })
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}
	return out, nil
}

func (r *SQLiteDatasetRepo) loadPatents(ctx context.Context) ([]domain.Patent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.year, p.status, rf.faculty_id
		FROM patents p
		LEFT JOIN record_faculty rf ON rf.kind = ? AND rf.record_id = p.id
		ORDER BY p.seq, p.id, rf.position`, db.KindPatent)
	if err != nil {
		return nil, fmt.Errorf("listing patents: %w", err)
	}
	out, err := foldRows(rows,
		func(p *domain.Patent, fid *sql.NullInt64) (int64, error) {
			var status string
			if err := rows.Scan(&p.ID, &p.Year, &status, fid); err != nil {
				return 0, fmt.Errorf("scanning patent: %w", err)
			}
			p.Status = domain.PatentStatus(status)
			return int64(p.ID), nil
		},
		func(p *domain.Patent) *[]int { return &p.FacultyIDs })
	if err != nil {
		return nil, fmt.Errorf("reading patents: %w", err)
	}
	return out, nil
}

func (r *SQLiteDatasetRepo) loadEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.seq, e.year, e.count, e.type, rf.faculty_id
		FROM events e
		LEFT JOIN record_faculty rf ON rf.kind = ? AND rf.record_id = e.seq
		ORDER BY e.seq, rf.position`, db.KindEvent)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	out, err := foldRows(rows,
		func(e *domain.Event, fid *sql.NullInt64) (int64, error) {
			var seq int64
			var typ string
			if err := rows.Scan(&seq, &e.Year, &e.Count, &typ, fid); err != nil {
				return 0, fmt.Errorf("scanning event: %w", err)
			}
			e.Type = domain.EventType(typ)
			return seq, nil
		},
		func(e *domain.Event) *[]int { return &e.FacultyIDs })
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return out, nil
}

// Replace deletes every stored record and writes ds in its place.
func (r *SQLiteDatasetRepo) Replace(ctx context.Context, ds *domain.Dataset, source string) (*DatasetLoad, error) {
	load := &DatasetLoad{
		ID:           uuid.New().String(),
		Source:       source,
		FacultyCount: len(ds.Faculty),
		RecordCount:  ds.RecordCount(),
		LoadedAt:     time.Now().UTC(),
	}

	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, table := range []string{"record_faculty", "publications", "projects", "patents", "events", "faculty"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		for _, f := range ds.Faculty {
			if _, err := tx.ExecContext(ctx, `INSERT INTO faculty (id, name) VALUES (?, ?)`, f.ID, f.Name); err != nil {
				return fmt.Errorf("inserting faculty %d: %w", f.ID, err)
			}
		}
		for i, p := range ds.Publications {
			seq := int64(i + 1)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO publications (seq, year, count, type, indexing) VALUES (?, ?, ?, ?, ?)`,
				seq, p.Year, p.Count, string(p.Type), string(p.Indexing)); err != nil {
				return fmt.Errorf("inserting publication %d: %w", i, err)
			}
			if err := insertFacultyRefs(ctx, tx, db.KindPublication, seq, p.FacultyIDs); err != nil {
				return err
			}
		}
		for i, p := range ds.Projects {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO projects (id, seq, year, status, funding) VALUES (?, ?, ?, ?, ?)`,
				p.ID, i, p.Year, string(p.Status), p.Funding); err != nil {
				return fmt.Errorf("inserting project %d: %w", p.ID, err)
			}
			if err := insertFacultyRefs(ctx, tx, db.KindProject, int64(p.ID), p.FacultyIDs); err != nil {
				return err
			}
		}
		for i, p := range ds.Patents {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO patents (id, seq, year, status) VALUES (?, ?, ?, ?)`,
				p.ID, i, p.Year, string(p.Status)); err != nil {
				return fmt.Errorf("inserting patent %d: %w", p.ID, err)
			}
			if err := insertFacultyRefs(ctx, tx, db.KindPatent, int64(p.ID), p.FacultyIDs); err != nil {
				return err
			}
		}
		for i, e := range ds.Events {
			seq := int64(i + 1)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO events (seq, year, count, type) VALUES (?, ?, ?, ?)`,
				seq, e.Year, e.Count, string(e.Type)); err != nil {
				return fmt.Errorf("inserting event %d: %w", i, err)
			}
			if err := insertFacultyRefs(ctx, tx, db.KindEvent, seq, e.FacultyIDs); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_loads (id, source, faculty_count, record_count, loaded_at) VALUES (?, ?, ?, ?, ?)`,
			load.ID, load.Source, load.FacultyCount, load.RecordCount, load.LoadedAt.Format(timeLayout))
		if err != nil {
			return fmt.Errorf("recording dataset load: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return load, nil
}

func (r *SQLiteDatasetRepo) LastLoad(ctx context.Context) (*DatasetLoad, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source, faculty_count, record_count, loaded_at
		FROM dataset_loads ORDER BY loaded_at DESC LIMIT 1`)

	var load DatasetLoad
	var loadedAt string
	if err := row.Scan(&load.ID, &load.Source, &load.FacultyCount, &load.RecordCount, &loadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDataset
		}
		return nil, fmt.Errorf("reading last dataset load: %w", err)
	}
	t, err := time.Parse(timeLayout, loadedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing loaded_at %q: %w", loadedAt, err)
	}
	load.LoadedAt = t
	return &load, nil
}
