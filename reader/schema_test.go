package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaByName(t *testing.T, path string) map[string]SchemaInfo {
	t.Helper()
	infos, err := ExtractSchemaInfo(path)
	require.NoError(t, err)
	out := make(map[string]SchemaInfo, len(infos))
	for _, info := range infos {
		out[info.Name] = info
	}
	return out
}

func TestExtractSchemaInfo_TypeMapping(t *testing.T) {
	type Row struct {
		IntField    int32   `parquet:"int_field"`
		LongField   int64   `parquet:"long_field"`
		FloatField  float32 `parquet:"float_field"`
		DoubleField float64 `parquet:"double_field"`
		BoolField   bool    `parquet:"bool_field"`
		StringField string  `parquet:"string_field"`
	}
	path := writeParquet(t, t.TempDir(), "types.parquet", []Row{{IntField: 42, StringField: "x"}})

	tests := []struct {
		field string
		typ   string
		kind  string
	}{
		{"int_field", "INT32", "Int32"},
		{"long_field", "INT64", "Int64"},
		{"float_field", "FLOAT32", "Float"},
		{"double_field", "FLOAT64", "Double"},
		{"bool_field", "BOOLEAN", "Boolean"},
		{"string_field", "STRING", "String"},
	}

	infos := schemaByName(t, path)
	require.Len(t, infos, len(tests))
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			info, ok := infos[tt.field]
			require.True(t, ok)
			assert.Equal(t, tt.typ, info.Type)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.field, info.Column)
		})
	}
}

func TestExtractSchemaInfo_Repetition(t *testing.T) {
	type Row struct {
		ID       int64    `parquet:"id"`
		Optional *string  `parquet:"optional,optional"`
		Tags     []string `parquet:"tags"`
	}
	path := writeParquet(t, t.TempDir(), "rep.parquet", []Row{{ID: 1, Tags: []string{"a"}}})

	infos := schemaByName(t, path)
	assert.True(t, infos["id"].Required)
	assert.True(t, infos["optional"].Optional)
	assert.True(t, infos["tags"].Repeated)
	// Repeated fields import as JSON text
	assert.Equal(t, "String", infos["tags"].Kind)
}

func TestExtractSchemaInfo_Nested(t *testing.T) {
	type Address struct {
		Street string `parquet:"street"`
		City   string `parquet:"city"`
	}
	type Row struct {
		ID      int64   `parquet:"id"`
		Address Address `parquet:"address"`
	}
	path := writeParquet(t, t.TempDir(), "nested.parquet", []Row{{ID: 1}})

	infos := schemaByName(t, path)
	require.Contains(t, infos, "address.city")
	assert.Equal(t, "address_city", infos["address.city"].Column)
	assert.NotContains(t, infos, "address")
}

func TestExtractSchemaInfo_FileNotFound(t *testing.T) {
	_, err := ExtractSchemaInfo("/nonexistent/file.parquet")
	assert.Error(t, err)
}
