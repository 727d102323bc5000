package data

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// SQLite's built-in lower() only folds ASCII. unicodeLower is registered on the
// driver so every sqlite connection can fold titles like "AMÉLIE" too.
const unicodeLower = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(unicodeLower, 1, func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return strings.ToLower(fmt.Sprint(v)), nil
		}
	})
}

// lowerFunc names the SQL function that folds case for the driver db was opened with
func (m MovieModel) lowerFunc() string {
	if m.DB.DriverName() == "sqlite" {
		return unicodeLower
	}
	return "LOWER"
}
