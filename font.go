package fontfiles

import (
	"context"
	"fmt"
	"os"

	"github.com/npillmayer/fontfiles/otquery"
	"golang.org/x/image/font/sfnt"
)

// ScalableFont is an installed outline font of type TTF or OTF, loaded into memory.
type ScalableFont struct {
	Fontname   string             // full font name, if present
	Filepath   string             // file path
	Descriptor otquery.Descriptor // family and style the font has been requested by
	Binary     []byte             // raw data
	SFNT       *sfnt.Font         // the font's container, ready for rendering packages
}

// Load finds the installed font file for family with the given style and loads it.
// It returns the same errors as Find, and errors from reading or parsing the font file.
func (s *Service) Load(ctx context.Context, family string, bold, italic bool) (*ScalableFont, error) {
	path, err := s.FindContext(ctx, family, bold, italic)
	if err != nil {
		return nil, err
	}
	f, err := LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	f.Descriptor = otquery.Descriptor{Family: family, Bold: bold, Italic: italic}
	return f, nil
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// Unlike the index, which reads only a font's directory and naming tables, it
// requires a complete font with glyph data.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}
