package sqlgen

import (
	"fmt"
	"strings"
)

// Построители для таблицы переводов. Составной ключ (code, language_id),
// суррогатного id у неё нет — все операции адресуются парой.

// translationKey достаёт пару (code, language_id) из параметров
func translationKey(q map[string]any) (code string, lang int, err error) {
	code = strings.TrimSpace(stringParam(q, "code"))
	if code == "" {
		return "", 0, fmt.Errorf("%w: translation needs code", ErrMissingCode)
	}
	lang = intParam(q, "language_id", DefaultLanguageID)
	return code, lang, nil
}

// BuildTranslationSelect: без ключа — список (с опциональными фильтрами
// по code/language_id), с ключом — одна строка.
func BuildTranslationSelect(q map[string]any) *Statement {
	var conds []string
	params := map[string]any{}

	if code := strings.TrimSpace(stringParam(q, "code")); code != "" {
		conds = append(conds, "code = "+QuoteString(code))
		params["code"] = code
	}
	if hasParam(q, "language_id") {
		if n, ok := intValue(q["language_id"]); ok {
			conds = append(conds, fmt.Sprintf("language_id = %d", n))
			params["language_id"] = n
		}
	}

	query := "SELECT code, language_id, text FROM translations"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY code ASC, language_id ASC"

	return &Statement{Query: query, Params: params}
}

// BuildTranslationInsert — строгая вставка: без ON DUPLICATE KEY UPDATE,
// дубликат составного ключа отдаст ошибку наружу на исполнении.
func BuildTranslationInsert(body map[string]any) (*Statement, error) {
	code, lang, err := translationKey(body)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"INSERT INTO translations (code, language_id, text) VALUES (%s, %d, %s);\n"+
			"SELECT code, language_id, text FROM translations WHERE code = %s AND language_id = %d;",
		QuoteString(code), lang, FormatValue(body["text"]), QuoteString(code), lang)
	return &Statement{
		Query:  query,
		Params: map[string]any{"code": code, "language_id": lang},
	}, nil
}

// BuildTranslationUpsert — основной путь записи: вставка либо обновление
// text по составному ключу одним стейтментом.
func BuildTranslationUpsert(body map[string]any) (*Statement, error) {
	code, lang, err := translationKey(body)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"INSERT INTO translations (code, language_id, text) VALUES (%s, %d, %s) "+
			"ON DUPLICATE KEY UPDATE text = VALUES(text);\n"+
			"SELECT code, language_id, text FROM translations WHERE code = %s AND language_id = %d;",
		QuoteString(code), lang, FormatValue(body["text"]), QuoteString(code), lang)
	return &Statement{
		Query:  query,
		Params: map[string]any{"code": code, "language_id": lang},
	}, nil
}

func BuildTranslationUpdate(body map[string]any) (*Statement, error) {
	code, lang, err := translationKey(body)
	if err != nil {
		return nil, err
	}
	if !hasParam(body, "text") {
		return nil, fmt.Errorf("%w: translation update needs text", ErrNoColumns)
	}
	query := fmt.Sprintf(
		"UPDATE translations SET text = %s WHERE code = %s AND language_id = %d;\n"+
			"SELECT code, language_id, text FROM translations WHERE code = %s AND language_id = %d;",
		FormatValue(body["text"]), QuoteString(code), lang, QuoteString(code), lang)
	return &Statement{
		Query:  query,
		Params: map[string]any{"code": code, "language_id": lang},
	}, nil
}

func BuildTranslationDelete(q map[string]any) (*Statement, error) {
	code, lang, err := translationKey(q)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"DELETE FROM translations WHERE code = %s AND language_id = %d;\nSELECT 1 AS success;",
		QuoteString(code), lang)
	return &Statement{
		Query:  query,
		Params: map[string]any{"code": code, "language_id": lang},
	}, nil
}
