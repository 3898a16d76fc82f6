package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var quizResultColumns = []string{
	"id", "timestamp", "session_id", "course", "lesson",
	"correct", "wrong", "success_rate", "committed",
}

func (r *eventRepo) AppendQuizResult(ctx context.Context, data QuizResultData) error {
	query, args := builder().
		Insert(quizResultTable).
		Columns(quizResultColumns[1:]...).
		Values(
			time.Now().UTC(),
			data.SessionID,
			data.Course,
			data.Lesson,
			data.Correct,
			data.Wrong,
			data.SuccessRate,
			data.Committed,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error) {
	sel := builder().Select(quizResultColumns...).From(entsql.Table(quizResultTable))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var results []QuizResult
	for rows.Next() {
		var q QuizResult
		if err := rows.Scan(
			&q.ID, &q.Timestamp, &q.SessionID, &q.Course, &q.Lesson,
			&q.Correct, &q.Wrong, &q.SuccessRate, &q.Committed,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, q)
	}
	return results, rows.Err()
}
