// Package query implements MHQL, the clause-based query language of
// mochadb.
//
// A query is an optional list of tags followed by keyword-delimited
// clauses:
//
//	[@TABLES|@SECTORS|@STACKS ...]
//	(USE <target> [FROM <name>] | SELECT <patterns> [FROM <table>])
//	[MUST <term> [AND <term>]* END]
//	[GROUPBY [ASC|DESC] <column>]
//	[ORDERBY [ASC|DESC] <column>]
//	(RETURN | REMOVE)
//
// Keywords are case-insensitive whole words. A clause runs from its
// keyword to the next primary keyword at the same nesting depth; depth
// rises on '(' and MUST and falls on ')' and END.
//
// # USE
//
// USE builds one working table:
//
//	USE Persons.Name, Persons.Age RETURN      columns by reference
//	USE Persons RETURN                        every column of a table
//	USE Name AS N, Age FROM Persons RETURN    columns of one table
//	USE * FROM Persons RETURN
//	@SECTORS USE * RETURN                     Name, Data, Description per sector
//	@SECTORS USE Data FROM Motd RETURN        fields of one sector
//
// # SELECT
//
// SELECT returns whole entities whose names match any of the anchored
// regular expressions it lists; '*' matches everything. Without tags it
// selects tables. SELECT c1, c2 FROM T selects columns of table T. A SELECT
// query ending in REMOVE deletes everything it selected.
//
// # MUST
//
// Each term is FUNC(column, operand) where column is a zero-based index or
// a column name of the working table. Rows survive when every term passes.
//
//	EQUAL, NOTEQUAL   decimal equality
//	BIGGER, LOWER     inclusive >= and <=
//	BETWEEN(c, lo, hi) inclusive range
//	STARTW, ENDW      text prefix and suffix
//
// Numeric functions fail with errors.ErrNotProcessable when a cell or an
// operand is not a number.
//
// # GROUPBY and ORDERBY
//
// GROUPBY replaces the working table with the columns Datas and Count, one
// row per distinct value in order of first appearance. ORDERBY sorts rows
// with a stable sort; DESC reverses the ascending order.
//
// # Usage
//
//	cmd, err := query.NewCommand(db, query.Options{})
//	if err != nil {
//	    return err
//	}
//	r, err := cmd.ExecuteReader("USE * FROM Persons MUST BIGGER(Age, 18) END ORDERBY Name RETURN")
//	if err != nil {
//	    return err
//	}
//	for r.Read() {
//	    t := r.Value().(*model.Table)
//	    ...
//	}
package query
