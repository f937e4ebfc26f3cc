// Package database implements the entity operations of a mochadb database
// over a store.Document: sectors, stacks and their items, tables, columns,
// rows and cell data.
//
// Both query languages, MHQL (package query) and MochaQ (package mochaq),
// run against these operations, so invariants such as AutoInt numbering,
// Unique values and identifier rules are enforced in one place.
//
// Every mutating method is write-through: the whole document is saved
// before the method returns. There is no batching and no rollback; a
// multi-step change that fails half-way leaves its completed steps saved.
//
//	db, err := database.Open(filestore.New("app.mochadb", key), database.Options{})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	err = db.CreateTable("Persons")
package database
