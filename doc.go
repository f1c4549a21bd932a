/*
Package fontfiles finds installed font files by family name and style.

Clients ask for a font by family name plus bold and italic flags, and receive the
path of an installed OpenType or TrueType font file:

	fonts := fontfiles.New()
	path, err := fonts.Find("Gentium Plus", false, true)

On first use, a Service scans the platform's font directories, parses every
candidate file and builds an index from (family, bold, italic) to file path.
Later queries are answered from the index without touching the file system.
Family names must match exactly, as they are stored in the fonts' 'name' tables.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" or font family is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica bold".

# Status

Does not contain methods for font collections (*.ttc), e.g.,
/System/Library/Fonts/Helvetica.ttc on Mac OS. Collections are not
candidate files and are never indexed.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontfiles

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.files'
func tracer() tracing.Trace {
	return tracing.Select("font.files")
}
