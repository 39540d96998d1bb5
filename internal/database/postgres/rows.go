// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package postgres

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// TimestampLayout is how timestamp columns are exchanged with clients
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one result row keyed by column name
type Row map[string]interface{}

// String returns the value of a text column, or "" when absent or null
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the value of a boolean column, false when absent or null
func (r Row) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// ScanRows reads every row into a map. Values are normalized by database type:
// json and jsonb become json.RawMessage, numeric becomes float64, timestamps
// become "YYYY-MM-DD HH:MM:SS" and other byte values become strings.
// An empty result is an empty, non-nil slice.
func ScanRows(rows *sqlx.Rows) ([]Row, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(types))
		ptrs := make([]interface{}, len(types))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(types))
		for i, ct := range types {
			v, err := normalize(ct.DatabaseTypeName(), values[i])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", ct.Name(), err)
			}
			row[ct.Name()] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalize(dbType string, v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		switch dbType {
		case "JSON", "JSONB":
			raw := make(json.RawMessage, len(val))
			copy(raw, val)
			return raw, nil
		case "NUMERIC":
			return strconv.ParseFloat(string(val), 64)
		default:
			return string(val), nil
		}
	case time.Time:
		return val.Format(TimestampLayout), nil
	default:
		return val, nil
	}
}
