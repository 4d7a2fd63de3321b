package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"swipelist/internal/model"
)

const entryColumns = `id, rank, title, body, done, created_at_unixms, updated_at_unixms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (model.Entry, error) {
	var (
		e                  model.Entry
		done               int
		createdMs, updatedMs int64
	)
	if err := r.Scan(&e.ID, &e.Rank, &e.Title, &e.Body, &done, &createdMs, &updatedMs); err != nil {
		return model.Entry{}, err
	}
	e.Done = done != 0
	e.CreatedAt = time.UnixMilli(createdMs).UTC()
	e.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// List returns all entries in display order.
func (s Store) List(ctx context.Context) ([]model.Entry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return listEntries(ctx, db)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func listEntries(ctx context.Context, q querier) ([]model.Entry, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var out []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	SortEntries(out)
	return out, nil
}

func (s Store) Get(ctx context.Context, id string) (model.Entry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	defer db.Close()
	return getEntry(ctx, db, id)
}

func getEntry(ctx context.Context, q querier, id string) (model.Entry, error) {
	id = strings.TrimSpace(id)
	e, err := scanEntry(q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, notFoundError{id: id}
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

// Add appends a new entry at the end of the list.
func (s Store) Add(ctx context.Context, title, body string) (model.Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Entry{}, errors.New("title is required")
	}
	db, err := s.open(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.Entry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var last sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT MAX(rank) FROM entries`).Scan(&last); err != nil {
		return model.Entry{}, fmt.Errorf("last rank: %w", err)
	}
	rank, err := RankAfter(last.String)
	if err != nil {
		return model.Entry{}, fmt.Errorf("rank after %q: %w", last.String, err)
	}

	now := time.Now().UTC()
	e := model.Entry{
		Rank:      rank,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for attempt := 0; ; attempt++ {
		e.ID = newEntryID()
		if _, err := getEntry(ctx, tx, e.ID); IsNotFound(err) {
			break
		} else if err != nil {
			return model.Entry{}, err
		}
		if attempt > 8 {
			return model.Entry{}, errors.New("unable to allocate an entry id")
		}
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries(`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Rank, e.Title, e.Body, 0, now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return model.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.Entry{}, err
	}
	log.Debugw("entry added", "id", e.ID, "rank", e.Rank)
	return e, nil
}

func (s Store) exec(ctx context.Context, id, query string, args ...any) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update entry %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFoundError{id: id}
	}
	return nil
}

func (s Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	return s.exec(ctx, id, `DELETE FROM entries WHERE id = ?`, id)
}

func (s Store) SetDone(ctx context.Context, id string, done bool) error {
	id = strings.TrimSpace(id)
	return s.exec(ctx, id, `UPDATE entries SET done = ?, updated_at_unixms = ? WHERE id = ?`,
		boolInt(done), time.Now().UTC().UnixMilli(), id)
}

// Edit replaces an entry's title and body.
func (s Store) Edit(ctx context.Context, id, title, body string) error {
	id, title = strings.TrimSpace(id), strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is required")
	}
	return s.exec(ctx, id, `UPDATE entries SET title = ?, body = ?, updated_at_unixms = ? WHERE id = ?`,
		title, body, time.Now().UTC().UnixMilli(), id)
}

// Move places entry id at index in the list and returns the new order. The
// index is clamped to the list.
func (s Store) Move(ctx context.Context, id string, index int) ([]model.Entry, error) {
	id = strings.TrimSpace(id)
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	es, err := listEntries(ctx, tx)
	if err != nil {
		return nil, err
	}
	plan, err := planMove(es, id, index)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().UnixMilli()
	for eid, rank := range plan.ranks {
		if _, err := tx.ExecContext(ctx,
			`UPDATE entries SET rank = ?, updated_at_unixms = ? WHERE id = ?`, rank, now, eid); err != nil {
			return nil, fmt.Errorf("rerank %s: %w", eid, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if len(plan.ranks) > 1 {
		log.Debugw("rebalanced ranks", "moved", id, "count", len(plan.ranks))
	}
	return plan.order, nil
}
