// Package mochaq implements MochaQ, the colon-delimited command language of
// mochadb.
//
// A command is a verb followed by its arguments, separated by ':'. The
// verb is case-insensitive; arguments are taken verbatim:
//
//	CREATETABLE:Persons
//	CREATECOLUMN:Persons:Name
//	ADDDATA:Persons:Name:Ann
//	UPDATEDATA:Persons:Name:0:Anna
//	SETCOLUMNDATATYPE:Persons:Age:Int32
//	CREATESTACKITEM:Config:port:server
//
// Parse turns text into one of a closed set of command nodes, selected by
// verb and argument count. Runner.Run executes commands that change the
// database; Runner.GetRun executes GET, EXISTS and COUNT commands and
// returns their value:
//
//	r := mochaq.NewRunner(db, nil)
//	if err := r.Run("CREATETABLE:Persons"); err != nil {
//	    return err
//	}
//	n, err := r.GetRun("TABLECOUNT")
//
// A command that contains BREAKQUERY anywhere does nothing. Unknown verbs,
// wrong argument counts and calling Run with a query (or GetRun with a
// mutation) fail with errors.ErrInvalidQuery.
package mochaq
