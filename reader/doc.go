// Package reader imports Apache Parquet files into mochadb tables.
//
// # Importing a Table
//
// ReadTable materializes one file, or every file a glob pattern matches,
// as a model.Table:
//
//	t, err := reader.ReadTable("data/*.parquet", "Events")
//	if err != nil {
//	    return err
//	}
//	if err := db.AddTable(t); err != nil {
//	    return err
//	}
//
// Leaf fields become columns in schema order. Nested fields are named by
// joining their path with '_' and characters that are not valid in a
// column name are replaced. Parquet types map to the closest column kind:
//
//	BOOLEAN           Boolean
//	INT32, INT64      Int32, Int64
//	FLOAT, DOUBLE     Float, Double
//	DECIMAL           Decimal
//	DATE, TIMESTAMP   DateTime
//	everything else   String
//
// Repeated fields, lists and maps are stored as JSON text. Null values
// become the kind's zero value. When a glob pattern is used, every row
// also records its source file in the "_file" column.
//
// # Raw Rows
//
// ReadMultipleFiles returns rows as maps without converting them:
//
//	rows, err := reader.ReadMultipleFiles("data/*.parquet")
//
// # Schema Introspection
//
// ExtractSchemaInfo describes every leaf field of a file together with
// the column name and kind ReadTable would give it.
//
// Always call Close when done with a Reader to release its file handle.
package reader
