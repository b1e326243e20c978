package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Executor исполняет сгенерированные скрипты. Это внешний для ядра
// коллаборатор: построители SQL про него не знают.
type Executor struct {
	conn *sql.DB
}

func NewExecutor(conn *sql.DB) *Executor {
	return &Executor{conn: conn}
}

// RunScript исполняет стейтменты скрипта по порядку и возвращает строки
// последнего SELECT'а. Весь скрипт идёт через ОДНО соединение: иначе
// START TRANSACTION/COMMIT и @new_id разъедутся по разным коннектам пула.
func (e *Executor) RunScript(ctx context.Context, script string) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	conn, err := e.conn.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stmts := SplitStatements(script)
	var rows []map[string]any
	for i, stmt := range stmts {
		last := i == len(stmts)-1
		if last && isSelect(stmt) {
			rows, err = queryMaps(ctx, conn, stmt)
		} else {
			_, err = conn.ExecContext(ctx, stmt)
		}
		if err != nil {
			// откат на совести сервера: оборванная транзакция умрёт вместе
			// с соединением
			return nil, fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}
	return rows, nil
}

func isSelect(stmt string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "SELECT")
}

func queryMaps(ctx context.Context, conn *sql.Conn, stmt string) ([]map[string]any, error) {
	res, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	cols, err := res.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for res.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := res.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			// []byte → string, чтобы JSON-ответ не превращался в base64
			if b, ok := raw[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = raw[i]
			}
		}
		out = append(out, row)
	}
	return out, res.Err()
}

// SplitStatements режет скрипт на стейтменты по ';', не трогая точки с
// запятой внутри строковых литералов (экранирование — бэкслешем, как в
// генераторе).
func SplitStatements(script string) []string {
	var out []string
	var buf strings.Builder
	inString := false
	escaped := false

	for _, r := range script {
		if inString {
			buf.WriteRune(r)
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '\'':
				inString = false
			}
			continue
		}
		switch r {
		case '\'':
			inString = true
			buf.WriteRune(r)
		case ';':
			if s := strings.TrimSpace(buf.String()); s != "" {
				out = append(out, s)
			}
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		out = append(out, s)
	}
	return out
}
