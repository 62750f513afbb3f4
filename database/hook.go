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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

// querySilentMode suppresses all query echoing, used by tests that assert
// on stdout.
var querySilentMode bool

func SetQuerySilentMode(silent bool) {
	querySilentMode = silent
}

// ConsoleQueryHook echoes failed queries to the console. Setting the
// EGRET_SQL environment variable to a non-empty value other than "0"
// echoes every query; "2" additionally keeps echoing queries that
// succeeded.
type ConsoleQueryHook struct {
	envName string
	writer  io.Writer
}

var _ bun.QueryHook = (*ConsoleQueryHook)(nil)

func NewConsoleQueryHook() *ConsoleQueryHook {
	return &ConsoleQueryHook{envName: "EGRET_SQL", writer: os.Stdout}
}

func (h *ConsoleQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *ConsoleQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if querySilentMode {
		return
	}
	enabled := false
	verbose := false
	if env, ok := os.LookupEnv(h.envName); ok {
		enabled = env != "" && env != "0"
		verbose = env == "2"
	}
	if !enabled {
		return
	}
	if !verbose && isBenignQueryError(event.Err) {
		return
	}

	now := time.Now()
	args := []interface{}{
		now.Format("2006-01-02 15:04:05.000"),
		color.CyanString("%8s", "[SQL]"),
		fmt.Sprintf("%12s", now.Sub(event.StartTime).Round(time.Microsecond)),
		" ",
		colorizeQuery(event),
	}
	if event.Err != nil {
		args = append(args, " ", color.New(color.BgRed, color.FgWhite).Sprintf(" %v ", event.Err))
	}
	_, _ = fmt.Fprintln(h.writer, args...)
}

// isBenignQueryError reports whether err is nil or an expected control-flow
// error that should not be echoed in non-verbose mode.
func isBenignQueryError(err error) bool {
	return err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, sql.ErrTxDone)
}

func colorizeQuery(event *bun.QueryEvent) string {
	switch event.Operation() {
	case "SELECT":
		return color.GreenString(event.Query)
	case "INSERT":
		return color.BlueString(event.Query)
	case "UPDATE":
		return color.YellowString(event.Query)
	case "DELETE":
		return color.MagentaString(event.Query)
	default:
		return color.RedString(event.Query)
	}
}
