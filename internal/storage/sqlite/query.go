package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
)

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Fragment string
	Project  string
	Context  string
	Priority string
	// Done selects completed (true) or pending (false) lines when non-nil.
	Done *bool
}

// Entry is one cached line and its position in the file.
type Entry struct {
	Index int
	Line  string
}

// List returns the cached lines matching f, in file order.
func List(db *sql.DB, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Fragment != "" {
		where = append(where, "instr(line, ?) > 0")
		args = append(args, f.Fragment)
	}
	if f.Project != "" {
		where = append(where, "project = ?")
		args = append(args, f.Project)
	}
	if f.Context != "" {
		where = append(where, "context = ?")
		args = append(args, f.Context)
	}
	if f.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, f.Priority)
	}
	if f.Done != nil {
		where = append(where, "done = ?")
		args = append(args, *f.Done)
	}

	query := "SELECT position, line FROM tasks"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY position"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Index, &e.Line); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count is a grouped tally.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Stats summarizes the cached lines.
type Stats struct {
	Total      int     `json:"total" yaml:"total"`
	Done       int     `json:"done" yaml:"done"`
	Pending    int     `json:"pending" yaml:"pending"`
	ByPriority []Count `json:"by_priority" yaml:"by_priority"`
	ByProject  []Count `json:"by_project" yaml:"by_project"`
}

// Summarize computes totals plus pending counts per priority and per project.
func Summarize(db *sql.DB) (Stats, error) {
	var s Stats
	err := db.QueryRow("SELECT COUNT(*), COALESCE(SUM(done), 0) FROM tasks").Scan(&s.Total, &s.Done)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	s.Pending = s.Total - s.Done

	if s.ByPriority, err = groupCounts(db, "priority"); err != nil {
		return Stats{}, err
	}
	if s.ByProject, err = groupCounts(db, "project"); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// groupCounts tallies pending lines by column; column is a fixed identifier.
func groupCounts(db *sql.DB, column string) ([]Count, error) {
	rows, err := db.Query(fmt.Sprintf(
		"SELECT %[1]s, COUNT(*) FROM tasks WHERE done = 0 AND %[1]s IS NOT NULL GROUP BY %[1]s ORDER BY %[1]s",
		column,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", column, err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
