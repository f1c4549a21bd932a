package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "find", "load":
		pterm.Info.Println("find / load")
		pterm.Println(`
	find <family> [bold] [italic]
	load <family> [bold] [italic]

	Family names are matched exactly, including case and spaces, as they
	appear in the fonts' name tables. Style words follow the family name,
	in any order. Runs of spaces in an unquoted family name count as one
	space, and trailing words bold, italic and regular are always taken
	as style. Put the family in double quotes to keep it verbatim:

	find "Ultra  Bold" italic

	'load' reads the font file found and displays its metrics.
	`)
	case "info":
		pterm.Info.Println("info")
		pterm.Println(`
	info <font file>

	Shows the table directory of a font file, its names, and the style
	flags from tables OS/2 and head. OS/2 fsSelection takes precedence
	over head macStyle:
	+-------+----------------+---------------+
	| Table | Bold           | Italic        |
	+-------+----------------+---------------+
	| OS/2  | fsSelection b5 | fsSelection b0|
	| head  | macStyle b0    | macStyle b1   |
	+-------+----------------+---------------+
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	find <family> [bold] [italic]   path of an installed font
	load <family> [bold] [italic]   load an installed font
	list [prefix]                   indexed fonts
	report [all]                    diagnostics of the last index build
	reindex                         scan font directories again
	dirs                            font directories, in scan order
	info <font file>                what the index sees of a font file
	help [topic]                    this text, or help on a command
	quit                            leave
	`)
	}
}
