/*
Package ot provides access to the table directory of OpenType font files.

Package `ot` reads the fixed sfnt header and the table directory of a single-font
OpenType or TrueType file and exposes the tables as byte views. It will not
interpret any table's content; this is left to sister package `otquery`.
From this point of view, `ot` is a low-level package.

Fonts in the wild often infringe upon the OpenType specification in harmless
ways (tables out of order, duplicate table records, offsets not on 4-byte
boundaries). Package `ot` tolerates these and records a warning, but it will
never hand out a table which reaches beyond the font's binary data.

# Status

No font collections (*.ttc) nor bitmap-only font formats are supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
