package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontfiles/ot"
	"github.com/npillmayer/fontfiles/otquery"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"
)

// infoOp displays what the index sees of a single font file: its table
// directory, its names and its style flags.
func infoOp(intp *Intp, op *Op) (error, bool) {
	path, ok := op.hasArg()
	if !ok {
		return errors.New("usage: info <font file>"), false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err, false
	}
	otf, err := ot.Parse(data)
	if err != nil {
		return err, false
	}
	printTables(otf)
	printNames(otf)
	printStyle(otf)
	if d, err := otquery.Describe(data); err != nil {
		pterm.Error.Printf("font would not be indexed: %v\n", err)
	} else {
		pterm.Success.Printf("font is indexed as %s\n", d)
	}
	return nil, false
}

func printTables(otf *ot.Font) {
	pterm.Info.Printf("font type %s, %d tables\n", fontTypeName(otf.Header.FontType), otf.Header.TableCount)
	data := [][]string{{"Tag", "Offset", "Size"}}
	for _, tag := range otf.TableTags() {
		offset, size := otf.Table(tag).Extent()
		data = append(data, []string{tag.String(), fmt.Sprintf("%d", offset), fmt.Sprintf("%d", size)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, w := range otf.Warnings() {
		pterm.Warning.Println(w.String())
	}
}

// fontTypeName displays a font type signature.
func fontTypeName(fontType uint32) string {
	if fontType == ot.FontTypeTrueType {
		return "TrueType"
	}
	return ot.Tag(fontType).String()
}

var nameIDs = map[sfnt.NameID]string{
	sfnt.NameIDFamily:               "family",
	sfnt.NameIDSubfamily:            "subfamily",
	sfnt.NameIDFull:                 "full",
	sfnt.NameIDPostScript:           "PostScript",
	sfnt.NameIDTypographicFamily:    "typographic family",
	sfnt.NameIDTypographicSubfamily: "typographic subfamily",
}

func printNames(otf *ot.Font) {
	data := [][]string{{"Platform", "Encoding", "Language", "Name", "Value"}}
	for rec := range otquery.NamesRange(otf) {
		name, ok := nameIDs[rec.NameID]
		if !ok {
			continue
		}
		data = append(data, []string{
			fmt.Sprintf("%d", rec.Platform),
			fmt.Sprintf("%d", rec.Encoding),
			fmt.Sprintf("0x%04x", rec.Language),
			name,
			rec.Value,
		})
	}
	if len(data) == 1 {
		pterm.Warning.Println("no decodable names")
		return
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if family, err := otquery.FamilyName(otf); err == nil {
		pterm.Printf("family name selected: %q\n", family)
	}
}

func printStyle(otf *ot.Font) {
	data := [][]string{{"Table", "Field", "Value", "Flags"}}
	if os2, ok := otquery.OS2Info(otf); ok {
		data = append(data, []string{"OS/2", "fsSelection", fmt.Sprintf("0x%04x", os2.FsSelection),
			flagNames(os2.FsSelection, map[uint16]string{
				otquery.FsSelectionItalic:  "italic",
				otquery.FsSelectionBold:    "bold",
				otquery.FsSelectionRegular: "regular",
			})})
		data = append(data, []string{"OS/2", "usWeightClass", fmt.Sprintf("%d", os2.WeightClass), ""})
	}
	if head, ok := otquery.HeadInfo(otf); ok {
		data = append(data, []string{"head", "macStyle", fmt.Sprintf("0x%04x", head.MacStyle),
			flagNames(head.MacStyle, map[uint16]string{
				otquery.MacStyleBold:   "bold",
				otquery.MacStyleItalic: "italic",
			})})
	}
	if len(data) > 1 {
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	style := otquery.Style(otf)
	pterm.Printf("style: bold=%v italic=%v (%s)\n", style.Bold, style.Italic, style.Source)
}

func flagNames(v uint16, names map[uint16]string) string {
	var set []string
	for bit := uint16(1); bit != 0; bit <<= 1 {
		if v&bit != 0 {
			if n, ok := names[bit]; ok {
				set = append(set, n)
			}
		}
	}
	return strings.Join(set, "|")
}
