package domain

import "time"

// ISOLayout matches the millisecond UTC timestamps the browser client writes.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Task is one entry of the persisted task list. The JSON names are shared
// with the browser client that reads the same blob.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
}

// FormatCreatedAt renders t the way CreatedAt is stored.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// CreatedTime parses CreatedAt. Unparseable values yield the zero time.
func (t Task) CreatedTime() time.Time {
	ts, err := time.Parse(time.RFC3339Nano, t.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}
