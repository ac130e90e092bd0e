package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// TutorialEvent records one tutorial engine transition.
type TutorialEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	UserType  string
	FlowID    string
	Action    string
	StepIndex int
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	SessionID string // only events of this session ("" = all)
}

// EventLog provides append and query access to tutorial events.
type EventLog interface {
	AppendTutorialEvent(ctx context.Context, ev TutorialEvent) error

	// RecentTutorialEvents returns events newest first.
	RecentTutorialEvents(ctx context.Context, opts QueryOpts) ([]TutorialEvent, error)
}

const eventsTable = "tutorial_events"

func (s *Store) AppendTutorialEvent(ctx context.Context, ev TutorialEvent) error {
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(eventsTable).
		Columns("sequence", "timestamp", "session_id", "user_type", "flow_id", "action", "step_index").
		Values(seqNum, ts.UTC().UnixMilli(), ev.SessionID, ev.UserType, ev.FlowID, ev.Action, ev.StepIndex).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save tutorial event: %w", err)
	}
	return nil
}

func (s *Store) RecentTutorialEvents(ctx context.Context, opts QueryOpts) ([]TutorialEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "session_id", "user_type", "flow_id", "action", "step_index").
		From(entsql.Table(eventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		sel = sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query tutorial events: %w", err)
	}
	defer rows.Close()

	var events []TutorialEvent
	for rows.Next() {
		var (
			ev TutorialEvent
			ts int64
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.SessionID, &ev.UserType, &ev.FlowID, &ev.Action, &ev.StepIndex); err != nil {
			return nil, fmt.Errorf("scan tutorial event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutorial events: %w", err)
	}
	return events, nil
}

// sequenceCounter hands out the monotonic sequence numbers that order
// tutorial events. Uses raw SQL because the increment must be atomic at the
// database level: the mutex serializes within the process, the RETURNING
// clause across processes sharing the file.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
