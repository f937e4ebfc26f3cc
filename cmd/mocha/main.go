// Command mocha creates, queries and edits mochadb databases.
package main

import (
	"fmt"
	"os"

	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/logger"
)

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
