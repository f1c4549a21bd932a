package otquery

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontfiles/ot"
)

// Descriptor identifies an installed font: family name plus bold and italic flags.
// Descriptors are comparable and may be used as map keys. The family name is
// kept exactly as decoded from the font, without case folding.
type Descriptor struct {
	Family string
	Bold   bool
	Italic bool
}

func (d Descriptor) String() string {
	var style []string
	if d.Bold {
		style = append(style, "bold")
	}
	if d.Italic {
		style = append(style, "italic")
	}
	if len(style) == 0 {
		style = append(style, "regular")
	}
	return fmt.Sprintf("%q %s", d.Family, strings.Join(style, "+"))
}

// Describe extracts a font's descriptor from the raw bytes of an OpenType font
// file. Table 'name' is required, tables 'OS/2' and 'head' are optional.
//
// Describe does not retain data after returning. Errors are of type *ot.FormatError.
func Describe(data []byte) (Descriptor, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return Descriptor{}, err
	}
	if otf.Table(ot.T("name")) == nil {
		return Descriptor{}, &ot.FormatError{
			Kind:  ot.MissingNameTable,
			Table: ot.T("name"),
			Issue: "font has no name table",
		}
	}
	family, err := FamilyName(otf)
	if err != nil {
		return Descriptor{}, err
	}
	style := Style(otf)
	d := Descriptor{Family: family, Bold: style.Bold, Italic: style.Italic}
	tracer().Debugf("font %s, style from %s", d, style.Source)
	return d, nil
}

// SfntExtractor extracts descriptors from OpenType/TrueType font data.
type SfntExtractor struct{}

// Extract is Describe.
func (SfntExtractor) Extract(data []byte) (Descriptor, error) {
	return Describe(data)
}
