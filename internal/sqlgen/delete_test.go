package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/db"
	"kontora/internal/schema"
)

func TestBuildDeleteSoft(t *testing.T) {
	st := BuildDelete(entity(t, "addresses"), "5")

	stmts := db.SplitStatements(st.Query)
	require.Len(t, stmts, 2)
	assert.Equal(t, "UPDATE addresses SET is_active = 0, updated_at = NOW() WHERE id = 5", stmts[0])
	assert.Equal(t, "SELECT 1 AS success", stmts[1])
	assert.Equal(t, "soft", st.Params["delete_policy"])
}

func TestBuildDeleteObject(t *testing.T) {
	st := BuildDelete(entity(t, "persons"), "42")

	// сносится объектная строка; строку сущности добивает FK-каскад
	assert.Contains(t, st.Query, "DELETE FROM objects WHERE id = 42")
	assert.NotContains(t, st.Query, "DELETE FROM persons")
	assert.Equal(t, "object", st.Params["delete_policy"])
}

func TestBuildDeleteHard(t *testing.T) {
	st := BuildDelete(entity(t, "relations"), "3")

	assert.Contains(t, st.Query, "DELETE FROM relations WHERE id = 3")
	assert.Equal(t, "hard", st.Params["delete_policy"])
}

func TestDeletePolicyExclusive(t *testing.T) {
	// каждая сущность реестра попадает ровно в одну ветку
	reg := schema.NewRegistry()
	for _, key := range reg.Keys() {
		e, _ := reg.Get(key)
		st := BuildDelete(e, 1)

		softs := strings.Count(st.Query, "SET is_active = 0")
		objects := strings.Count(st.Query, "DELETE FROM objects")
		hards := strings.Count(st.Query, "DELETE FROM "+e.Table)

		switch e.DeletePolicy {
		case schema.DeleteSoft:
			assert.Equal(t, 1, softs, key)
			assert.Zero(t, objects, key)
			assert.Zero(t, hards, key)
		case schema.DeleteObject:
			assert.Equal(t, 1, objects, key)
			assert.Zero(t, softs, key)
		case schema.DeleteHard:
			assert.Equal(t, 1, hards, key)
			assert.Zero(t, softs, key)
			assert.Zero(t, objects, key)
		default:
			t.Fatalf("entity %q has no delete policy", key)
		}
	}
}
