/*
Command fontcli is an interactive shell for exploring the installed fonts of a host.

It scans the platform's font directories, builds an index of font families and
lets the user query it:

	fonts > find Gentium Plus bold italic
	fonts > list Gent
	fonts > info /Library/Fonts/Georgia.ttf

Flags -platform and -workers override the platform and the number of parallel
parsers. Additional font directories may be given as arguments.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontfiles"
	"github.com/npillmayer/fontfiles/fontdirs"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.cli'
func tracer() tracing.Trace {
	return tracing.Select("font.cli")
}

var traceKeys = []string{"font.cli", "font.files", "font.index", "font.dirs", "font.opentype"}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	platform := flag.String("platform", "", "Platform whose font directories to scan [darwin|windows|linux]")
	workers := flag.Int("workers", 0, "Number of font files to parse in parallel")
	flag.Parse()

	// set up logging and configuration
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error" // will set the correct level later
	}
	if *platform != "" {
		conf[fontfiles.ConfPlatform] = *platform
	}
	if *workers > 0 {
		conf[fontfiles.ConfWorkers] = strconv.Itoa(*workers)
	}
	if flag.NArg() > 0 {
		conf[fontfiles.ConfDirs] = strings.Join(flag.Args(), string(os.PathListSeparator))
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the font files CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("fonts > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{
		repl:     repl,
		conf:     conf,
		fonts:    fontfiles.New(fontfiles.OptionsFromConfig(conf)...),
		platform: fontdirs.Platform(strings.ToLower(*platform)),
	}
	if intp.platform == "" {
		intp.platform = fontdirs.Current()
	}
	level, ok := traceLevel(*tlevel)
	if !ok {
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// index fonts in the background while the user types the first command
	intp.buildIndex()
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

func traceLevel(l string) (tracing.TraceLevel, bool) {
	switch l {
	case "Debug":
		return tracing.LevelDebug, true
	case "Info":
		return tracing.LevelInfo, true
	case "Error":
		return tracing.LevelError, true
	}
	return tracing.LevelError, false
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	conf     testconfig.Conf
	fonts    *fontfiles.Service
	platform fontdirs.Platform
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd := parseCommand(line)
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command line.
type Op struct {
	code   int
	arg    string // everything after the command word, without style words
	bold   bool
	italic bool
}

const (
	QUIT int = iota
	HELP
	FIND
	LOAD
	LIST
	REPORT
	REINDEX
	DIRS
	INFO
)

var opMap = map[string]int{
	"quit":    QUIT,
	"exit":    QUIT,
	"help":    HELP,
	"find":    FIND,
	"load":    LOAD,
	"list":    LIST,
	"report":  REPORT,
	"reindex": REINDEX,
	"dirs":    DIRS,
	"info":    INFO,
}

var opNames = []string{
	"quit",
	"help",
	"find",
	"load",
	"list",
	"report",
	"reindex",
	"dirs",
	"info",
}

// parseCommand splits a line into command word and argument. For commands
// naming a font, trailing words "bold", "italic" and "regular" select the style,
// e.g. "find Gentium Plus bold italic". A family name in double quotes is taken
// verbatim, e.g. `find "Ultra  Bold" italic`. Unknown commands display help.
func parseCommand(line string) *Op {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	code, ok := opMap[strings.ToLower(cmd)]
	if !ok {
		return &Op{code: HELP}
	}
	op := &Op{code: code}
	rest = strings.TrimSpace(rest)
	if code != FIND && code != LOAD {
		op.arg = strings.Join(strings.Fields(rest), " ")
		return op
	}
	var family string
	quoted := strings.HasPrefix(rest, `"`)
	if quoted {
		var closed bool
		family, rest, closed = strings.Cut(rest[1:], `"`)
		if !closed {
			return &Op{code: HELP, arg: opNames[code]}
		}
	}
	words := strings.Fields(rest)
style:
	for len(words) > 0 {
		switch strings.ToLower(words[len(words)-1]) {
		case "bold":
			op.bold = true
		case "italic":
			op.italic = true
		case "regular":
		default:
			break style
		}
		words = words[:len(words)-1]
	}
	if quoted {
		if len(words) > 0 { // only style words may follow a quoted family
			return &Op{code: HELP, arg: opNames[code]}
		}
		op.arg = family
	} else {
		op.arg = strings.Join(words, " ")
	}
	tracer().Debugf("parsed command: %s %q bold=%v italic=%v", opNames[code], op.arg, op.bold, op.italic)
	return op
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	FIND:    findOp,
	LOAD:    loadOp,
	LIST:    listOp,
	REPORT:  reportOp,
	REINDEX: reindexOp,
	DIRS:    dirsOp,
	INFO:    infoOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
