package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Limit is a bucket's task capacity: either unbounded or capped at a
// positive count. The zero value is unbounded. Marshals to JSON null when
// unbounded and maps to a nullable integer column.
type Limit struct {
	capped bool
	max    int
}

// Unbounded returns the no-limit value.
func Unbounded() Limit { return Limit{} }

// Capped returns a limit of n tasks.
func Capped(n int) Limit { return Limit{capped: true, max: n} }

// IsSet reports whether the bucket has a cap at all.
func (l Limit) IsSet() bool { return l.capped }

// Max returns the cap; only meaningful when IsSet is true.
func (l Limit) Max() int { return l.max }

func (l Limit) String() string {
	if !l.capped {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.max)
}

func (l Limit) MarshalJSON() ([]byte, error) {
	if !l.capped {
		return []byte("null"), nil
	}
	return json.Marshal(l.max)
}

func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Unbounded()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("limit must be a positive integer, got %d", n)
	}
	*l = Capped(n)
	return nil
}

// Scan implements sql.Scanner for a nullable integer column.
func (l *Limit) Scan(src interface{}) error {
	var v sql.NullInt64
	if err := v.Scan(src); err != nil {
		return err
	}
	if !v.Valid {
		*l = Unbounded()
		return nil
	}
	*l = Capped(int(v.Int64))
	return nil
}

// Value implements driver.Valuer; unbounded stores as NULL.
func (l Limit) Value() (driver.Value, error) {
	if !l.capped {
		return nil, nil
	}
	return int64(l.max), nil
}

// Bucket is an ordered, optionally capacity-limited container for tasks.
// Order is the bucket's zero-based position among all buckets of the same
// owner and stays dense. Tasks is a derived view filled in by hydration,
// never stored.
type Bucket struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Limit      Limit     `json:"limit"`
	Order      int       `json:"order"`
	IsOneThing bool      `json:"is_one_thing"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Tasks []Task `json:"tasks,omitempty"`
}
