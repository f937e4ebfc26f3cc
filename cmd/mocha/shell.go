package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/vegasq/mochadb/database"
	"github.com/vegasq/mochadb/errors"
	"github.com/vegasq/mochadb/mochaq"
	"github.com/vegasq/mochadb/output"
	"github.com/vegasq/mochadb/query"
)

const shellHelp = `Lines starting with @, USE or SELECT are MHQL queries:
  USE * FROM Persons MUST BIGGER(Age, 18) END ORDERBY Name RETURN
  @SECTORS SELECT * RETURN
Other lines are MochaQ commands:
  CREATETABLE:Persons
  GETTABLE:Persons
Meta commands:
  .format jsonl|csv|table   change the output format
  .help                     show this help
  .exit                     leave the shell
`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive MHQL and MochaQ shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDatabase(func(db *database.Database) error {
				s, err := newSession(a, db)
				if err != nil {
					return err
				}
				return s.loop()
			})
		},
	}
}

// session evaluates shell lines against one open database
type session struct {
	a      *app
	cmd    *query.Command
	runner *mochaq.Runner
	format string
}

func newSession(a *app, db *database.Database) (*session, error) {
	c, err := a.newCommand(db)
	if err != nil {
		return nil, err
	}
	return &session{a: a, cmd: c, runner: a.newRunner(db), format: a.cfg.Output.Format}, nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mocha_history")
}

func (s *session) loop() error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if history == "" {
			return
		}
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(s.a.out, "mochadb shell on %s. Type .help for help.\n", s.a.cfg.Database.Path)
	for {
		input, err := line.Prompt("mocha> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(s.a.out)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to read input")
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		exit, err := s.eval(input)
		if err != nil {
			fmt.Fprintf(s.a.errOut, "Error: %v\n", err)
			if hint := errors.FlattenHints(err); hint != "" {
				fmt.Fprintf(s.a.errOut, "Hint: %s\n", hint)
			}
		}
		if exit {
			return nil
		}
	}
}

// eval runs one line and reports whether the shell should exit
func (s *session) eval(input string) (bool, error) {
	if strings.HasPrefix(input, ".") {
		return s.meta(input)
	}
	if isMHQL(input) {
		r, err := s.cmd.Execute(input)
		if err != nil {
			return false, err
		}
		for r.Read() {
			if err := s.print(r.Value()); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	c, err := mochaq.Parse(input)
	if err != nil {
		return false, err
	}
	if !c.IsQuery() {
		if err := s.runner.Exec(c); err != nil {
			return false, err
		}
		if _, ok := c.(mochaq.Noop); !ok {
			fmt.Fprintln(s.a.out, "ok")
		}
		return false, nil
	}
	v, err := s.runner.Query(c)
	if err != nil {
		return false, err
	}
	return false, s.print(v)
}

func (s *session) meta(input string) (bool, error) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ".exit", ".quit":
		return true, nil
	case ".help":
		fmt.Fprint(s.a.out, shellHelp)
		return false, nil
	case ".format":
		if len(fields) != 2 {
			return false, errors.WithHint(errors.New(".format needs one argument"), "use jsonl, csv or table")
		}
		if _, err := output.New(fields[1], s.a.out); err != nil {
			return false, err
		}
		s.format = fields[1]
		return false, nil
	}
	return false, errors.WithHint(errors.Newf("unknown meta command %s", fields[0]), "type .help for help")
}

func (s *session) print(v any) error {
	f, err := output.New(s.format, s.a.out)
	if err != nil {
		return err
	}
	return f.Format(output.FromValue(v))
}

// isMHQL reports whether a line is an MHQL query rather than MochaQ
func isMHQL(input string) bool {
	if strings.HasPrefix(input, "@") {
		return true
	}
	word, _, _ := strings.Cut(input, " ")
	word = strings.ToUpper(word)
	return word == "USE" || word == "SELECT"
}

var mhqlKeywords = []string{
	"USE", "SELECT", "FROM", "AS", "MUST", "AND", "END", "GROUPBY", "ORDERBY",
	"ASC", "DESC", "RETURN", "REMOVE", "@TABLES", "@SECTORS", "@STACKS",
}

// complete suggests MochaQ verbs at the start of a line and MHQL keywords
// after the last space
func complete(line string) []string {
	i := strings.LastIndexByte(line, ' ')
	if i < 0 && !strings.Contains(line, ":") {
		var out []string
		prefix := strings.ToUpper(line)
		for _, v := range mochaq.Verbs() {
			if strings.HasPrefix(string(v), prefix) {
				out = append(out, string(v))
			}
		}
		for _, kw := range mhqlKeywords {
			if strings.HasPrefix(kw, prefix) {
				out = append(out, kw+" ")
			}
		}
		return out
	}
	if i < 0 {
		return nil
	}
	head, word := line[:i+1], strings.ToUpper(line[i+1:])
	var out []string
	for _, kw := range mhqlKeywords {
		if word != "" && strings.HasPrefix(kw, word) {
			out = append(out, head+kw+" ")
		}
	}
	return out
}
