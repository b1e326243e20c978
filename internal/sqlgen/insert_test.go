package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/db"
)

func TestBuildInsertSharedPK(t *testing.T) {
	st := BuildInsert(entity(t, "persons"), map[string]any{
		"first_name": "Jane",
		"last_name":  "Doe",
		"user_id":    7,
	}, map[string]any{})

	stmts := db.SplitStatements(st.Query)
	require.Len(t, stmts, 6)

	assert.Equal(t, "START TRANSACTION", stmts[0])
	assert.Equal(t,
		"INSERT INTO objects (object_type_id, object_status_id, created_at) "+
			"VALUES ((SELECT id FROM object_types WHERE code = 'person'), 1, NOW())",
		stmts[1])
	assert.Equal(t, "SET @new_id = LAST_INSERT_ID()", stmts[2])
	// строка сущности получает тот же id, что и объектная строка
	assert.Equal(t,
		"INSERT INTO persons (id, first_name, last_name, created_at, created_by) "+
			"VALUES (@new_id, 'Jane', 'Doe', NOW(), 7)",
		stmts[3])
	assert.Equal(t, "COMMIT", stmts[4])
	// финальный стейтмент — гидрированный re-select нового объекта
	assert.True(t, strings.HasPrefix(stmts[5], "SELECT "))
	assert.Contains(t, stmts[5], "WHERE p.id = @new_id")
	assert.Contains(t, stmts[5], "COALESCE(p_gender_code.text, p.gender_code) AS gender")
}

func TestBuildInsertSharedPKStatus(t *testing.T) {
	st := BuildInsert(entity(t, "companies"), map[string]any{
		"name":             "Acme GmbH",
		"object_status_id": 3,
	}, map[string]any{})

	assert.Contains(t, st.Query, "(SELECT id FROM object_types WHERE code = 'company'), 3, NOW()")
	// статус — колонка objects, в insert сущности не попадает
	assert.NotContains(t, st.Query, "companies (id, name, object_status_id")
	assert.Equal(t, 3, st.Params["object_status_id"])
}

func TestBuildInsertSimple(t *testing.T) {
	st := BuildInsert(entity(t, "addresses"), map[string]any{
		"object_id":         11,
		"address_type_code": "home",
		"street":            "Hauptstraße",
		"city":              "Berlin",
		"country_code":      "de",
		"is_primary":        true,
		"user_id":           3,
	}, map[string]any{})

	stmts := db.SplitStatements(st.Query)
	require.Len(t, stmts, 2)

	assert.NotContains(t, st.Query, "START TRANSACTION")
	assert.Equal(t,
		"INSERT INTO addresses (object_id, address_type_code, street, city, country_code, is_primary, created_at, created_by) "+
			"VALUES (11, 'home', 'Hauptstraße', 'Berlin', 'de', 1, NOW(), 3)",
		stmts[0])
	assert.Contains(t, stmts[1], "WHERE a.id = LAST_INSERT_ID()")
}

func TestBuildInsertIgnoresSystemColumns(t *testing.T) {
	// id и таймстампы из body молча отбрасываются
	st := BuildInsert(entity(t, "contacts"), map[string]any{
		"id":            999,
		"created_at":    "2020-01-01",
		"updated_at":    "2020-01-01",
		"created_by":    1,
		"object_id":     5,
		"contact_value": "x@example.com",
	}, map[string]any{})

	first := db.SplitStatements(st.Query)[0]
	assert.NotContains(t, first, "999")
	assert.NotContains(t, first, "2020-01-01")
	assert.Contains(t, first, "created_at")
	assert.Contains(t, first, "NOW()")
}
