package otquery

import "github.com/npillmayer/fontfiles/ot"

// StyleSource tells which table style flags have been taken from.
type StyleSource int

const (
	StyleUndeclared StyleSource = iota // neither OS/2 nor head are usable
	StyleFromOS2                       // OS/2 fsSelection
	StyleFromHead                      // head macStyle
)

func (src StyleSource) String() string {
	switch src {
	case StyleFromOS2:
		return "OS/2"
	case StyleFromHead:
		return "head"
	}
	return "none"
}

// StyleFlags are the bold and italic flags of a font.
type StyleFlags struct {
	Bold   bool
	Italic bool
	Source StyleSource
}

// Bits of field macStyle in table 'head'.
const (
	MacStyleBold   uint16 = 1 << 0
	MacStyleItalic uint16 = 1 << 1
)

// Style determines bold and italic flags of a font.
//
// Field fsSelection of table 'OS/2' takes precedence. If the font has no usable
// OS/2 table, field macStyle of table 'head' is consulted. A font without any
// style information is considered regular. Style detection never fails.
func Style(otf *ot.Font) StyleFlags {
	if os2, ok := OS2Info(otf); ok {
		return StyleFlags{
			Bold:   os2.FsSelection&FsSelectionBold != 0,
			Italic: os2.FsSelection&FsSelectionItalic != 0,
			Source: StyleFromOS2,
		}
	}
	if otf != nil {
		if mac, ok := macStyle(otf); ok {
			return StyleFlags{
				Bold:   mac&MacStyleBold != 0,
				Italic: mac&MacStyleItalic != 0,
				Source: StyleFromHead,
			}
		}
	}
	tracer().Debugf("font declares no style, assuming regular")
	return StyleFlags{}
}
