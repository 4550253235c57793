package menuconfig

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"creme-menu/internal/db"
	"creme-menu/internal/entry"
)

// queries runs the record statements on a driver or a transaction.
type queries struct {
	conn dialect.ExecQuerier
	b    *entsql.DialectBuilder
}

func newQueries(conn dialect.ExecQuerier, dialectName string) *queries {
	return &queries{conn: conn, b: entsql.Dialect(dialectName)}
}

var recordColumns = []string{db.ColumnID, db.ColumnEntryID, db.ColumnParentID, db.ColumnOrder, db.ColumnName}

func (q *queries) selectRecords() *entsql.Selector {
	t := q.b.Table(db.MenuConfigItemsTableName)
	s := q.b.Select().From(t)
	cols := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		cols[i] = t.C(c)
	}
	return s.Select(cols...).OrderBy(t.C(db.ColumnOrder), t.C(db.ColumnID))
}

func (q *queries) scan(ctx context.Context, s *entsql.Selector) ([]entry.Record, error) {
	query, args := s.Query()
	rows := &entsql.Rows{}
	if err := q.conn.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []entry.Record
	for rows.Next() {
		var (
			rec    entry.Record
			parent sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.EntryID, &parent, &rec.Order, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if parent.Valid {
			p := int(parent.Int64)
			rec.ParentID = &p
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// all returns every record ordered by order, then id.
func (q *queries) all(ctx context.Context) ([]entry.Record, error) {
	return q.scan(ctx, q.selectRecords())
}

func (q *queries) get(ctx context.Context, id int) (entry.Record, error) {
	s := q.selectRecords()
	s.Where(entsql.EQ(s.C(db.ColumnID), id))
	recs, err := q.scan(ctx, s)
	if err != nil {
		return entry.Record{}, err
	}
	if len(recs) == 0 {
		return entry.Record{}, fmt.Errorf("%w: menu item %d", ErrNotFound, id)
	}
	return recs[0], nil
}

func (q *queries) children(ctx context.Context, parentID int) ([]entry.Record, error) {
	s := q.selectRecords()
	s.Where(entsql.EQ(s.C(db.ColumnParentID), parentID))
	return q.scan(ctx, s)
}

// maxOrder returns the greatest order of the records using one of entryIDs.
func (q *queries) maxOrder(ctx context.Context, entryIDs []string) (int, bool, error) {
	if len(entryIDs) == 0 {
		return 0, false, nil
	}
	t := q.b.Table(db.MenuConfigItemsTableName)
	args := make([]any, len(entryIDs))
	for i, id := range entryIDs {
		args[i] = id
	}
	query, qargs := q.b.Select(entsql.Max(t.C(db.ColumnOrder))).
		From(t).
		Where(entsql.In(t.C(db.ColumnEntryID), args...)).
		Query()

	rows := &entsql.Rows{}
	if err := q.conn.Query(ctx, query, qargs, rows); err != nil {
		return 0, false, fmt.Errorf("query max order: %w", err)
	}
	defer rows.Close()

	var n sql.NullInt64
	if err := entsql.ScanOne(rows, &n); err != nil {
		return 0, false, fmt.Errorf("scan max order: %w", err)
	}
	return int(n.Int64), n.Valid, nil
}

func (q *queries) insert(ctx context.Context, rec entry.Record) (int, error) {
	ins := q.b.Insert(db.MenuConfigItemsTableName).
		Columns(db.ColumnEntryID, db.ColumnOrder, db.ColumnName, db.ColumnParentID)
	var parent any
	if rec.ParentID != nil {
		parent = *rec.ParentID
	}
	query, args := ins.Values(rec.EntryID, rec.Order, rec.Name, parent).Returning(db.ColumnID).Query()

	rows := &entsql.Rows{}
	if err := q.conn.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	defer rows.Close()
	id, err := entsql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("scan inserted id: %w", err)
	}
	return id, nil
}

func (q *queries) update(ctx context.Context, rec entry.Record) error {
	query, args := q.b.Update(db.MenuConfigItemsTableName).
		Set(db.ColumnEntryID, rec.EntryID).
		Set(db.ColumnOrder, rec.Order).
		Set(db.ColumnName, rec.Name).
		Where(entsql.EQ(db.ColumnID, rec.ID)).
		Query()
	if err := q.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("update record %d: %w", rec.ID, err)
	}
	return nil
}

func (q *queries) delete(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query, qargs := q.b.Delete(db.MenuConfigItemsTableName).
		Where(entsql.Or(entsql.In(db.ColumnID, args...), entsql.In(db.ColumnParentID, args...))).
		Query()
	if err := q.conn.Exec(ctx, query, qargs, nil); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

func (q *queries) deleteAll(ctx context.Context) error {
	query, args := q.b.Delete(db.MenuConfigItemsTableName).Query()
	if err := q.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete all records: %w", err)
	}
	return nil
}
