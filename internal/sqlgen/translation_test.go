package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/db"
)

func TestBuildTranslationSelect(t *testing.T) {
	t.Run("unfiltered", func(t *testing.T) {
		st := BuildTranslationSelect(map[string]any{})
		assert.Equal(t,
			"SELECT code, language_id, text FROM translations ORDER BY code ASC, language_id ASC",
			st.Query)
	})

	t.Run("by key", func(t *testing.T) {
		st := BuildTranslationSelect(map[string]any{"code": "gender_f", "language_id": 2})
		assert.Contains(t, st.Query, "WHERE code = 'gender_f' AND language_id = 2")
	})
}

func TestBuildTranslationUpsert(t *testing.T) {
	st, err := BuildTranslationUpsert(map[string]any{
		"code":        "gender_f",
		"language_id": 2,
		"text":        "weiblich",
	})
	require.NoError(t, err)

	stmts := db.SplitStatements(st.Query)
	require.Len(t, stmts, 2)
	assert.Equal(t,
		"INSERT INTO translations (code, language_id, text) VALUES ('gender_f', 2, 'weiblich') "+
			"ON DUPLICATE KEY UPDATE text = VALUES(text)",
		stmts[0])
	assert.Equal(t,
		"SELECT code, language_id, text FROM translations WHERE code = 'gender_f' AND language_id = 2",
		stmts[1])
}

func TestBuildTranslationInsertStrict(t *testing.T) {
	st, err := BuildTranslationInsert(map[string]any{
		"code":        "gender_f",
		"language_id": 2,
		"text":        "weiblich",
	})
	require.NoError(t, err)

	stmts := db.SplitStatements(st.Query)
	require.Len(t, stmts, 2)
	// строгая вставка: никакого ON DUPLICATE, дубликат ключа — ошибка базы
	assert.Equal(t,
		"INSERT INTO translations (code, language_id, text) VALUES ('gender_f', 2, 'weiblich')",
		stmts[0])
	assert.Equal(t,
		"SELECT code, language_id, text FROM translations WHERE code = 'gender_f' AND language_id = 2",
		stmts[1])

	_, err = BuildTranslationInsert(map[string]any{"text": "x"})
	assert.ErrorIs(t, err, ErrMissingCode)
}

func TestBuildTranslationDefaultLanguage(t *testing.T) {
	st, err := BuildTranslationUpsert(map[string]any{"code": "x", "text": "y"})
	require.NoError(t, err)
	assert.Contains(t, st.Query, "VALUES ('x', 1, 'y')")
}

func TestBuildTranslationRequiresCode(t *testing.T) {
	_, err := BuildTranslationUpsert(map[string]any{"text": "y"})
	assert.ErrorIs(t, err, ErrMissingCode)

	_, err = BuildTranslationDelete(map[string]any{"language_id": 2})
	assert.ErrorIs(t, err, ErrMissingCode)
}

func TestBuildTranslationUpdateRequiresText(t *testing.T) {
	_, err := BuildTranslationUpdate(map[string]any{"code": "x", "language_id": 1})
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestBuildTranslationDelete(t *testing.T) {
	st, err := BuildTranslationDelete(map[string]any{"code": "x", "language_id": 3})
	require.NoError(t, err)

	stmts := db.SplitStatements(st.Query)
	require.Len(t, stmts, 2)
	assert.Equal(t, "DELETE FROM translations WHERE code = 'x' AND language_id = 3", stmts[0])
	assert.Equal(t, "SELECT 1 AS success", stmts[1])
}
