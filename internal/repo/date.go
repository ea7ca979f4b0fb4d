package repo

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Date is a UTC timestamp kept as RFC3339 text in SQLite.
type Date time.Time

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date(time.Time{})
		return nil
	case time.Time:
		*d = Date(v.UTC())
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("cannot scan type %T into Date", value)
}

func (d *Date) parse(s string) error {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// CURRENT_TIMESTAMP default
		t, err = time.Parse(time.DateTime, s)
		if err != nil {
			return err
		}
	}
	*d = Date(t.UTC())
	return nil
}

func (d Date) String() string {
	return time.Time(d).Format(time.RFC3339)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}
