package models

import (
	"database/sql/driver"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	FEED_LIMIT          = 50
	MESSAGE_LIMIT       = 50
	NOTIFICATION_LIMIT  = 50
	SEARCH_LIMIT        = 10
	DATE_FORMAT         = "2006-01-02"
	CHALLENGE_CATEGORY  = "Challenge"
	DEFAULT_CATEGORY    = "General"
	ANONYMOUS_AUTHOR    = "Anonymous"
	MAX_AVATAR_FILESIZE = 5 * 1024 * 1024
)

// UUIDList maps a Postgres UUID[] column.
type UUIDList []uuid.UUID

func (l *UUIDList) Scan(src interface{}) error {
	var raw pq.StringArray
	if err := raw.Scan(src); err != nil {
		return err
	}

	out := make(UUIDList, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

func (l UUIDList) Value() (driver.Value, error) {
	raw := make(pq.StringArray, len(l))
	for i, id := range l {
		raw[i] = id.String()
	}
	return raw.Value()
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle adds id when absent and removes it otherwise. It reports whether id
// is present afterwards.
func (l UUIDList) Toggle(id uuid.UUID) (UUIDList, bool) {
	for i, v := range l {
		if v == id {
			out := make(UUIDList, 0, len(l)-1)
			out = append(out, l[:i]...)
			return append(out, l[i+1:]...), false
		}
	}
	out := make(UUIDList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, id), true
}
