package types

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// StringArray maps onto a postgres text[] column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return pq.Array([]string(a)).Value()
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var strs []string
	if err := pq.Array(&strs).Scan(value); err != nil {
		return fmt.Errorf("failed to scan string array: %w", err)
	}

	out := make([]string, len(strs))
	for i, s := range strs {
		out[i] = strings.TrimSpace(s)
	}
	*a = out
	return nil
}

func (a StringArray) Contains(needle string) bool {
	for _, s := range a {
		if s == needle {
			return true
		}
	}
	return false
}
