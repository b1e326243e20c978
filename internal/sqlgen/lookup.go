package sqlgen

import (
	"fmt"
	"strings"

	"kontora/internal/reference"
)

// Построители для плоских справочников, ключуемых по code.
// Форма таблицы фиксированная: (code, name, sort_order, is_active).
// Удаление у справочников всегда мягкое.

const (
	lookupAlias      = "l"
	lookupTranslAl   = "tr"
	lookupSortClause = "ORDER BY l.sort_order ASC, l.code ASC"
)

func lookupSelectList(l reference.LookupConfig) string {
	label := lookupAlias + ".name AS label"
	if l.Translated {
		label = fmt.Sprintf("COALESCE(%s.text, %s.name) AS label", lookupTranslAl, lookupAlias)
	}
	return fmt.Sprintf("%s.code, %s.name, %s, %s.sort_order, %s.is_active",
		lookupAlias, lookupAlias, label, lookupAlias, lookupAlias)
}

func lookupFrom(l reference.LookupConfig, langExpr string) string {
	from := fmt.Sprintf("%s %s", l.Table, lookupAlias)
	if l.Translated {
		from += fmt.Sprintf(" LEFT JOIN translations %s ON %s.code = %s.code AND %s.language_id = %s",
			lookupTranslAl, lookupTranslAl, lookupAlias, lookupTranslAl, langExpr)
	}
	return from
}

func BuildLookupSelect(l reference.LookupConfig, q map[string]any) *Statement {
	langExpr, langSource := resolveLanguage(q)

	active := 1
	if hasParam(q, "is_active") {
		active = boolishParam(q["is_active"])
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s.is_active = %d %s",
		lookupSelectList(l), lookupFrom(l, langExpr), lookupAlias, active, lookupSortClause)

	return &Statement{
		Query:  query,
		Params: map[string]any{"is_active": active, "language": langSource},
	}
}

func BuildLookupGet(l reference.LookupConfig, code string, q map[string]any) *Statement {
	langExpr, langSource := resolveLanguage(q)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s.code = %s",
		lookupSelectList(l), lookupFrom(l, langExpr), lookupAlias, QuoteString(code))

	return &Statement{
		Query:  query,
		Params: map[string]any{"code": code, "language": langSource},
	}
}

func BuildLookupInsert(l reference.LookupConfig, body, q map[string]any) (*Statement, error) {
	code := strings.TrimSpace(stringParam(body, "code"))
	if code == "" {
		return nil, fmt.Errorf("%w: lookup %q insert", ErrMissingCode, l.Name)
	}

	sortOrder := intParam(body, "sort_order", 0)
	active := 1
	if hasParam(body, "is_active") {
		active = boolishParam(body["is_active"])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (code, name, sort_order, is_active) VALUES (%s, %s, %d, %d);\n",
		l.Table, QuoteString(code), FormatValue(body["name"]), sortOrder, active)
	appendTranslationUpsert(&sb, l, code, body, q)

	get := BuildLookupGet(l, code, q)
	sb.WriteString(get.Query + ";")

	return &Statement{
		Query:  sb.String(),
		Params: map[string]any{"code": code},
	}, nil
}

func BuildLookupUpdate(l reference.LookupConfig, code string, body, q map[string]any) (*Statement, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: lookup %q update", ErrMissingCode, l.Name)
	}

	var sets []string
	if hasParam(body, "name") {
		sets = append(sets, fmt.Sprintf("name = COALESCE(%s, name)", FormatValue(body["name"])))
	}
	if hasParam(body, "sort_order") {
		sets = append(sets, fmt.Sprintf("sort_order = COALESCE(%s, sort_order)", FormatValue(body["sort_order"])))
	}
	if hasParam(body, "is_active") {
		sets = append(sets, fmt.Sprintf("is_active = %d", boolishParam(body["is_active"])))
	}

	var sb strings.Builder
	if len(sets) > 0 {
		fmt.Fprintf(&sb, "UPDATE %s SET %s WHERE code = %s;\n",
			l.Table, strings.Join(sets, ", "), QuoteString(code))
	}
	appendTranslationUpsert(&sb, l, code, body, q)
	if sb.Len() == 0 {
		return nil, fmt.Errorf("%w: lookup %q update", ErrNoColumns, l.Name)
	}

	get := BuildLookupGet(l, code, q)
	sb.WriteString(get.Query + ";")

	return &Statement{
		Query:  sb.String(),
		Params: map[string]any{"code": code},
	}, nil
}

func BuildLookupDelete(l reference.LookupConfig, code string) (*Statement, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: lookup %q delete", ErrMissingCode, l.Name)
	}
	query := fmt.Sprintf("UPDATE %s SET is_active = 0 WHERE code = %s;\nSELECT 1 AS success;",
		l.Table, QuoteString(code))
	return &Statement{
		Query:  query,
		Params: map[string]any{"code": code, "delete_policy": "soft"},
	}, nil
}

// appendTranslationUpsert дописывает upsert перевода по ключу
// (code, language_id), если справочник переводится и в body пришёл text.
func appendTranslationUpsert(sb *strings.Builder, l reference.LookupConfig, code string, body, q map[string]any) {
	if !l.Translated || !hasParam(body, "text") {
		return
	}
	langExpr, _ := resolveLanguage(mergeLang(body, q))
	fmt.Fprintf(sb,
		"INSERT INTO translations (code, language_id, text) VALUES (%s, %s, %s) "+
			"ON DUPLICATE KEY UPDATE text = VALUES(text);\n",
		QuoteString(code), langExpr, FormatValue(body["text"]))
}

// mergeLang: язык для upsert'а берём из body, затем из query
func mergeLang(body, q map[string]any) map[string]any {
	if hasParam(body, "language_id") || hasParam(body, "language_code") {
		return body
	}
	return q
}
