package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/deptlens/internal/db"
)

// foldRows reads rows ordered by record key where the last column is an
// optional faculty id from record_faculty. Consecutive rows sharing a key
// collapse into one record carrying every faculty id in position order.
func foldRows[T any](
	rows *sql.Rows,
	scan func(rec *T, facultyID *sql.NullInt64) (key int64, err error),
	ids func(rec *T) *[]int,
) ([]T, error) {
	defer rows.Close()

	out := []T{}
	var lastKey int64
	for rows.Next() {
		var rec T
		var fid sql.NullInt64
		key, err := scan(&rec, &fid)
		if err != nil {
			return nil, err
		}
		if len(out) == 0 || key != lastKey {
			out = append(out, rec)
			lastKey = key
		}
		if fid.Valid {
			p := ids(&out[len(out)-1])
			*p = append(*p, int(fid.Int64))
		}
	}
	return out, rows.Err()
}

func insertFacultyRefs(ctx context.Context, tx db.DBTX, kind string, recordID int64, facultyIDs []int) error {
	for pos, fid := range facultyIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO record_faculty (kind, record_id, faculty_id, position) VALUES (?, ?, ?, ?)`,
			kind, recordID, fid, pos)
		if err != nil {
			return fmt.Errorf("linking %s %d to faculty %d: %w", kind, recordID, fid, err)
		}
	}
	return nil
}
