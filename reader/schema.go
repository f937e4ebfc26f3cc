package reader

import (
	"strings"

	"github.com/parquet-go/parquet-go"
)

// SchemaInfo describes one leaf field of a Parquet file and the table
// column an import creates for it.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
	Column       string `json:"column"`
	Kind         string `json:"kind"`
}

// ExtractSchemaInfo lists the leaf fields of a Parquet file in schema
// order. Nested fields are named with dots ("address.street") and are
// repeated when any of their parents is.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	schema := r.Schema()
	var infos []SchemaInfo
	for _, f := range schema.Fields() {
		describe(f, "", false, &infos)
	}
	attachColumns(schema, infos)
	return infos, nil
}

func describe(f parquet.Field, prefix string, repeated bool, out *[]SchemaInfo) {
	name := f.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated = repeated || f.Repeated()

	if children := f.Fields(); len(children) > 0 {
		for _, child := range children {
			describe(child, name, repeated, out)
		}
		return
	}

	*out = append(*out, SchemaInfo{
		Name:         name,
		Type:         fieldType(f),
		PhysicalType: physicalType(f),
		LogicalType:  logicalType(f),
		Required:     f.Required(),
		Optional:     f.Optional(),
		Repeated:     repeated,
	})
}

// attachColumns fills Column and Kind. Fields below a repeated group
// import into the group's single JSON column.
func attachColumns(schema *parquet.Schema, infos []SchemaInfo) {
	byPath := map[string]fieldColumn{}
	for _, c := range columnsOf(schema) {
		byPath[strings.Join(c.path, ".")] = c
	}
	for i := range infos {
		for name := infos[i].Name; ; {
			if c, ok := byPath[name]; ok {
				infos[i].Column = c.name
				infos[i].Kind = c.kind.String()
				break
			}
			dot := strings.LastIndexByte(name, '.')
			if dot < 0 {
				break
			}
			name = name[:dot]
		}
	}
}

var physicalNames = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT",
	parquet.Double:            "DOUBLE",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

// logicalNames are the logical types reported in place of the physical one
var logicalNames = map[string]string{
	"STRING":    "STRING",
	"UTF8":      "STRING",
	"ENUM":      "ENUM",
	"UUID":      "UUID",
	"DATE":      "DATE",
	"TIME":      "TIME",
	"TIMESTAMP": "TIMESTAMP",
	"DECIMAL":   "DECIMAL",
	"JSON":      "JSON",
	"BSON":      "BSON",
}

func physicalType(f parquet.Field) string {
	if f.Type() == nil {
		return "GROUP"
	}
	if name, ok := physicalNames[f.Type().Kind()]; ok {
		return name
	}
	return "UNKNOWN"
}

// fieldType names a leaf by its logical type when that is well known and
// by its physical type otherwise. Floating point types read as FLOAT32 and
// FLOAT64.
func fieldType(f parquet.Field) string {
	t := f.Type()
	if t == nil {
		return "GROUP"
	}
	if lt := t.LogicalType(); lt != nil {
		// TIMESTAMP(isAdjustedToUTC=true,unit=MILLIS) matches TIMESTAMP
		name, _, _ := strings.Cut(strings.ToUpper(lt.String()), "(")
		if friendly, ok := logicalNames[name]; ok {
			return friendly
		}
	}
	switch t.Kind() {
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	}
	return physicalType(f)
}
