package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/kestrel-labs/tableau/server/dao"
)

func NewSubmissionsDBConn(file string) (*SubmissionsDB, error) {
	repo := &SubmissionsDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init(false)
}

type SubmissionsDB struct {
	db *sql.DB
}

func (repo *SubmissionsDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS submissions (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		formula TEXT NOT NULL,
		category INTEGER NOT NULL,
		decided INTEGER NOT NULL,
		verdict INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *SubmissionsDB) Create(ctx context.Context, sub dao.Submission) (dao.Submission, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Submission{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO submissions (id, user_id, formula, category, decided, verdict, created) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Submission{}, wrapDBError(err)
	}

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(sub.UserID),
		convertToDB_Formula(sub.Formula),
		int(sub.Category),
		boolToInt(sub.Decided),
		int(sub.Verdict),
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.Submission{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *SubmissionsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Submission, error) {
	sub := dao.Submission{ID: id}

	var userID string
	var formula string
	var category int
	var decided int
	var verdict int
	var created int64

	row := repo.db.QueryRowContext(ctx, `SELECT user_id, formula, category, decided, verdict, created FROM submissions WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(&userID, &formula, &category, &decided, &verdict, &created)
	if err != nil {
		return sub, wrapDBError(err)
	}

	if err := convertFromDB_UUID(userID, &sub.UserID); err != nil {
		return sub, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	if err := convertFromDB_Formula(formula, &sub.Formula); err != nil {
		return sub, fmt.Errorf("stored formula is invalid: %w", err)
	}
	sub.Category = tableau.Category(category)
	sub.Decided = decided != 0
	sub.Verdict = engine.Verdict(verdict)
	if err := convertFromDB_Time(created, &sub.Created); err != nil {
		return sub, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}

	return sub, nil
}

func (repo *SubmissionsDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Submission, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, formula, category, decided, verdict, created FROM submissions WHERE user_id = ? ORDER BY created DESC;`,
		convertToDB_UUID(userID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Submission

	for rows.Next() {
		sub := dao.Submission{UserID: userID}
		var id string
		var formula string
		var category int
		var decided int
		var verdict int
		var created int64

		err = rows.Scan(&id, &formula, &category, &decided, &verdict, &created)
		if err != nil {
			return nil, wrapDBError(err)
		}

		if err := convertFromDB_UUID(id, &sub.ID); err != nil {
			return all, fmt.Errorf("stored ID %q is invalid: %w", id, err)
		}
		if err := convertFromDB_Formula(formula, &sub.Formula); err != nil {
			return all, fmt.Errorf("stored formula is invalid: %w", err)
		}
		sub.Category = tableau.Category(category)
		sub.Decided = decided != 0
		sub.Verdict = engine.Verdict(verdict)
		if err := convertFromDB_Time(created, &sub.Created); err != nil {
			return all, fmt.Errorf("stored created time %d is invalid: %w", created, err)
		}

		all = append(all, sub)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *SubmissionsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Submission, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`,
		convertToDB_UUID(id),
	)
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *SubmissionsDB) Close() error {
	return repo.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
