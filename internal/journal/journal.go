package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tallybook/tally/internal/engine"
)

// Store implements engine.Journal: OpenLog plus fire-and-forget
// WriteRecord.
var _ engine.Journal = (*Store)(nil)

func (s *Store) OpenLog() error {
	if db, ok := s.db.(*sql.DB); ok {
		return db.Ping()
	}
	return nil
}

// WriteRecord snapshots the transaction under the given opcode. The
// engine never consults a result, so failures are swallowed here;
// writeRecord carries the error for callers that do care.
func (s *Store) WriteRecord(t *engine.Transaction, op engine.Opcode) {
	_ = s.writeRecord(t, op)
}

func (s *Store) writeRecord(t *engine.Transaction, op engine.Opcode) error {
	if t == nil {
		return nil
	}

	db, ok := s.db.(*sql.DB)
	if !ok {
		return fmt.Errorf("writeRecord cannot be called within an existing transaction")
	}

	dbTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database : %w", err)
	}
	defer dbTx.Rollback()

	stmtRec, err := dbTx.Prepare(`
		INSERT INTO journal_records (opcode, recorded_at, txn_id, num, description, docref, date_posted, date_entered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record SQL : %w", err)
	}
	defer stmtRec.Close()

	var recordID int64
	err = stmtRec.QueryRow(
		string(op),
		time.Now().UnixNano(),
		t.ID.String(),
		t.Num(),
		t.Description(),
		t.DocRef(),
		t.DatePosted().UnixNano(),
		t.DateEntered().UnixNano(),
	).Scan(&recordID)
	if err != nil {
		return fmt.Errorf("failed to insert journal record : %w", err)
	}

	stmtSplit, err := dbTx.Prepare(`
		INSERT INTO journal_splits (record_id, split_id, account, memo, action, docref, quantity, share_price, reconciled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare split SQL : %w", err)
	}
	defer stmtSplit.Close()

	for _, split := range t.Splits() {
		_, err := stmtSplit.Exec(
			recordID,
			split.ID.String(),
			split.Account().Name(),
			split.Memo(),
			split.Action(),
			split.DocRef(),
			split.Quantity().String(),
			split.SharePrice().String(),
			int(split.Reconcile()),
		)
		if err != nil {
			return fmt.Errorf("failed to insert journal split : %w", err)
		}
	}

	return dbTx.Commit()
}

// Records returns recent journal records, newest first.
func (s *Store) Records(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT id, opcode, recorded_at, txn_id, num, description, docref, date_posted, date_entered
		FROM journal_records
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// RecordsInOrder returns every journal record, oldest first. This is
// the replay feed.
func (s *Store) RecordsInOrder() ([]*Record, error) {
	rows, err := s.db.Query(`
		SELECT id, opcode, recorded_at, txn_id, num, description, docref, date_posted, date_entered
		FROM journal_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec := &Record{}
		err := rows.Scan(
			&rec.ID, &rec.Opcode, &rec.RecordedAt, &rec.TxnID,
			&rec.Num, &rec.Description, &rec.DocRef,
			&rec.DatePosted, &rec.DateEntered,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordByID retrieves one record and its split snapshots.
func (s *Store) RecordByID(id int64) (*Record, []*SplitRecord, error) {
	rec := &Record{}
	err := s.db.QueryRow(`
		SELECT id, opcode, recorded_at, txn_id, num, description, docref, date_posted, date_entered
		FROM journal_records
		WHERE id = ?
	`, id).Scan(
		&rec.ID, &rec.Opcode, &rec.RecordedAt, &rec.TxnID,
		&rec.Num, &rec.Description, &rec.DocRef,
		&rec.DatePosted, &rec.DateEntered,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("journal record %d: %w", id, ErrRecordNotFound)
		}
		return nil, nil, fmt.Errorf("failed to query journal record: %w", err)
	}

	splits, err := s.SplitsByRecord(rec.ID)
	if err != nil {
		return nil, nil, err
	}

	return rec, splits, nil
}

// SplitsByRecord returns the split snapshots of one journal record.
func (s *Store) SplitsByRecord(recordID int64) ([]*SplitRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, record_id, split_id, account, memo, action, docref, quantity, share_price, reconciled
		FROM journal_splits
		WHERE record_id = ?
		ORDER BY id
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal splits: %w", err)
	}
	defer rows.Close()

	var splits []*SplitRecord
	for rows.Next() {
		sp := &SplitRecord{}
		var quantity, price string
		err := rows.Scan(
			&sp.ID, &sp.RecordID, &sp.SplitID, &sp.Account,
			&sp.Memo, &sp.Action, &sp.DocRef,
			&quantity, &price, &sp.Reconciled,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal split: %w", err)
		}
		if sp.Quantity, err = parseAmount(quantity); err != nil {
			return nil, err
		}
		if sp.SharePrice, err = parseAmount(price); err != nil {
			return nil, err
		}
		splits = append(splits, sp)
	}

	return splits, rows.Err()
}
