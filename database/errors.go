/*
 * Copyright 2025 the egret authors.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// SQLError classifies driver errors into a backend-independent kind so
// callers can branch without matching driver-specific codes or text.
type SQLError int

const (
	UnknownErr SQLError = iota
	NoTableErr
	ExistTableErr
	NoColumnErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
)

// ClassifySQLError matches err against the MySQL driver's error numbers
// and, failing that, against the sqlstate codes and message fragments the
// Postgres and SQLite drivers produce. The bool reports whether the error
// was recognized as a SQL backend error at all.
func ClassifySQLError(err error) (SQLError, bool) {
	if err == nil {
		return UnknownErr, false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1146:
			return NoTableErr, true
		case 1050:
			return ExistTableErr, true
		case 1054:
			return NoColumnErr, true
		case 1062:
			return DuplicateKeyErr, true
		case 1048:
			return NotNullViolationErr, true
		case 1216, 1217, 1451, 1452:
			return ForeignKeyViolationErr, true
		case 3819:
			return CheckConstraintViolationErr, true
		case 1265:
			return DataTruncatedErr, true
		default:
			return UnknownErr, true
		}
	}

	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "sqlstate 42p01"),
		strings.Contains(s, "undefined table"),
		strings.Contains(s, "no such table"):
		return NoTableErr, true
	case strings.Contains(s, "already exists") && (strings.Contains(s, "table") || strings.Contains(s, "relation")):
		return ExistTableErr, true
	case strings.Contains(s, "sqlstate 42703"),
		strings.Contains(s, "undefined column"),
		strings.Contains(s, "no such column"):
		return NoColumnErr, true
	case strings.Contains(s, "sqlstate 23505"),
		strings.Contains(s, "duplicate key value"),
		strings.Contains(s, "unique constraint failed"):
		return DuplicateKeyErr, true
	case strings.Contains(s, "sqlstate 23502"),
		strings.Contains(s, "not-null constraint"),
		strings.Contains(s, "not null constraint failed"):
		return NotNullViolationErr, true
	case strings.Contains(s, "sqlstate 23503"),
		strings.Contains(s, "foreign key violation"),
		strings.Contains(s, "foreign key constraint failed"):
		return ForeignKeyViolationErr, true
	case strings.Contains(s, "sqlstate 23514"),
		strings.Contains(s, "check constraint"):
		return CheckConstraintViolationErr, true
	case strings.Contains(s, "sqlstate 22001"),
		strings.Contains(s, "data truncated"),
		strings.Contains(s, "string data right truncation"):
		return DataTruncatedErr, true
	}
	return UnknownErr, false
}

// IsDuplicateKey reports whether err is a unique constraint violation on
// any supported backend.
func IsDuplicateKey(err error) bool {
	kind, ok := ClassifySQLError(err)
	return ok && kind == DuplicateKeyErr
}
