// Package store is the document store mochadb databases live in.
//
// A database is one tree of Nodes:
//
//	Mocha
//	├── Root        Password, Description
//	├── Sectors     <name Description="...">data</name>
//	├── Stacks      <name Description="..."> nested items
//	├── Tables      <table Description="..."> <column DataType="..."> <Data>..</Data>
//	└── FileSystem  reserved, preserved untouched
//
// A Document binds the tree to a Backend that loads and saves it as a
// whole. Backends live in the memstore, filestore and sqlitestore
// subpackages.
package store
