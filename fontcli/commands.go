package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/fontfiles"
	"github.com/npillmayer/fontfiles/fontdirs"
	"github.com/npillmayer/fontfiles/fontindex"
	"github.com/npillmayer/fontfiles/otquery"
	"github.com/pterm/pterm"
)

// buildIndex starts indexing fonts in the background. Commands querying the
// index wait for the build to complete.
func (intp *Intp) buildIndex() {
	pterm.Info.Printf("Indexing fonts for platform %s\n", intp.platform)
	intp.fonts.BuildAsync(context.Background(), func(r *fontindex.Report, err error) {
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		pterm.Success.Printf("Indexed fonts: %s\n", r)
	})
}

func findOp(intp *Intp, op *Op) (error, bool) {
	family, ok := op.hasArg()
	if !ok {
		return errors.New("usage: find <family> [bold] [italic]"), false
	}
	path, err := intp.fonts.Find(family, op.bold, op.italic)
	if errors.Is(err, fontfiles.ErrNotFound) {
		pterm.Warning.Println(err)
		intp.suggest(family)
		return nil, false
	} else if err != nil {
		return err, false
	}
	pterm.Success.Println(path)
	return nil, false
}

// suggest lists indexed fonts of a family, ignoring case.
func (intp *Intp) suggest(family string) {
	families, err := intp.fonts.Families(context.Background())
	if err != nil {
		return
	}
	var alt []string
	for _, d := range families {
		if strings.EqualFold(d.Family, family) {
			alt = append(alt, d.String())
		}
	}
	if len(alt) > 0 {
		pterm.Info.Printf("Available: %s\n", strings.Join(alt, ", "))
	}
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	family, ok := op.hasArg()
	if !ok {
		return errors.New("usage: load <family> [bold] [italic]"), false
	}
	f, err := intp.fonts.Load(context.Background(), family, op.bold, op.italic)
	if err != nil {
		return err, false
	}
	data := [][]string{
		{"Property", "Value"},
		{"Font name", f.Fontname},
		{"File", f.Filepath},
		{"Size", fmt.Sprintf("%d bytes", len(f.Binary))},
		{"Glyphs", fmt.Sprintf("%d", f.SFNT.NumGlyphs())},
		{"Units per em", fmt.Sprintf("%d", f.SFNT.UnitsPerEm())},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func listOp(intp *Intp, op *Op) (error, bool) {
	families, err := intp.fonts.Families(context.Background())
	if err != nil {
		return err, false
	}
	prefix := strings.ToLower(op.arg)
	data := [][]string{{"Family", "Style", "File"}}
	for _, d := range families {
		if !strings.HasPrefix(strings.ToLower(d.Family), prefix) {
			continue
		}
		path, err := intp.fonts.Find(d.Family, d.Bold, d.Italic)
		if err != nil {
			return err, false
		}
		data = append(data, []string{d.Family, styleName(d), path})
	}
	if len(data) == 1 {
		pterm.Info.Println("No fonts")
		return nil, false
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func styleName(d otquery.Descriptor) string {
	switch {
	case d.Bold && d.Italic:
		return "bold italic"
	case d.Bold:
		return "bold"
	case d.Italic:
		return "italic"
	}
	return "regular"
}

func reportOp(intp *Intp, op *Op) (error, bool) {
	r := intp.fonts.Report()
	if r == nil {
		pterm.Warning.Println("font index has not been built")
		return nil, false
	}
	printReport(r, op.arg == "all")
	return nil, false
}

func printReport(r *fontindex.Report, all bool) {
	pterm.Info.Println(r.String())
	if len(r.Skipped) == 0 {
		return
	}
	data := [][]string{{"Skipped file", "Reason"}}
	for i, s := range r.Skipped {
		if i == 20 && !all {
			data = append(data, []string{"…", fmt.Sprintf("%d more, use 'report all'", len(r.Skipped)-i)})
			break
		}
		data = append(data, []string{s.Path, s.Err.Error()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func reindexOp(intp *Intp, op *Op) (error, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	r, err := intp.fonts.Reindex(ctx)
	if err != nil {
		return err, false
	}
	printReport(r, false)
	return nil, false
}

func dirsOp(intp *Intp, op *Op) (error, bool) {
	dirs, err := fontdirs.Directories(intp.platform, nil)
	if err != nil {
		return err, false
	}
	for _, extra := range filepath.SplitList(intp.conf.GetString(fontfiles.ConfDirs)) {
		if extra != "" {
			dirs = append(dirs, extra)
		}
	}
	pterm.Info.Printf("Font directories for platform %s, in scan order:\n", intp.platform)
	items := make([]pterm.BulletListItem, len(dirs))
	for i, d := range dirs {
		items[i] = pterm.BulletListItem{Level: 0, Text: d}
	}
	pterm.DefaultBulletList.WithItems(items).Render()
	return nil, false
}
