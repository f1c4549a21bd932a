/*
Package otquery interprets the tables of an OpenType font which are needed to
identify it: family name from table 'name', and bold/italic style flags from
tables 'OS/2' and 'head'.

Package `otquery` builds on top of package `ot`, which provides the table
directory. All queries work on the raw table bytes; they never reach
beyond a table's extent, and malformed data results in missing values rather
than in a panic.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
