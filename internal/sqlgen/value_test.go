package sqlgen

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "hello", "'hello'"},
		{"apostrophe", "O'Brien", `'O\'Brien'`},
		{"backslash", `C:\temp`, `'C:\\temp'`},
		{"quote and backslash", `O'Brien\path`, `'O\'Brien\\path'`},
		// бэкслеши экранируются раньше кавычек — иначе двойное экранирование
		{"backslash then quote", `\'`, `'\\\''`},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint", uint(7), "7"},
		{"float", 3.5, "3.5"},
		{"float no exponent", 1234567.25, "1234567.25"},
		{"json number", json.Number("19.99"), "19.99"},
		{"json number garbage", json.Number("abc"), "NULL"},
		{"time", time.Date(2024, 5, 17, 12, 30, 45, 0, time.UTC), "'2024-05-17 12:30:45'"},
		{"slice to json", []int{1, 2, 3}, "'[1,2,3]'"},
		{"map to json", map[string]int{"a": 1}, `'{"a":1}'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestFormatValueTimeUTC(t *testing.T) {
	// не-UTC метки приводятся к UTC перед форматированием
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 5, 17, 15, 30, 45, 0, loc)
	assert.Equal(t, "'2024-05-17 12:30:45'", FormatValue(ts))
}

func TestQuoteStringNeverBreaksOut(t *testing.T) {
	// сколько бы кавычек и бэкслешей ни пришло, литерал остаётся закрытым:
	// чётность бэкслешей перед каждой внутренней кавычкой — нечётная
	inputs := []string{
		"plain",
		"'; DROP TABLE persons; --",
		`\' OR 1=1 --`,
		`\\\'`,
		"",
	}
	for _, in := range inputs {
		got := QuoteString(in)
		assert.True(t, len(got) >= 2 && got[0] == '\'' && got[len(got)-1] == '\'')
		// последняя кавычка не должна быть заэкранирована
		backslashes := 0
		for i := len(got) - 2; i >= 0 && got[i] == '\\'; i-- {
			backslashes++
		}
		assert.Zero(t, backslashes%2, "input %q -> %q", in, got)
	}
}

func FuzzQuoteString(f *testing.F) {
	f.Add("O'Brien")
	f.Add(`C:\temp\'`)
	f.Add("'; --")
	f.Fuzz(func(t *testing.T, s string) {
		got := QuoteString(s)
		if len(got) < 2 || got[0] != '\'' || got[len(got)-1] != '\'' {
			t.Fatalf("not a quoted literal: %q", got)
		}
		n := 0
		for i := len(got) - 2; i >= 0 && got[i] == '\\'; i-- {
			n++
		}
		if n%2 != 0 {
			t.Fatalf("closing quote escaped for input %q: %q", s, got)
		}
	})
}
