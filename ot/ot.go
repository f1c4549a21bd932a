package ot

import (
	"slices"
)

// Font represents the table directory of an OpenType font.
// Tables are views into the binary data the font has been parsed from; clients
// must not modify that data while the Font remains in use.
type Font struct {
	Header   FontHeader
	tables   map[Tag]Table
	warnings []FontWarning // Warnings accumulated during parsing
}

// FontHeader is the fixed header in front of the table directory. As font
// collections are not supported, the table directory always begins at byte 0
// of the font data.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Recognized values for FontHeader.FontType.
const (
	FontTypeTrueType uint32 = 0x00010000 // TrueType outlines
	FontTypeCFF      uint32 = 0x4f54544f // 'OTTO'
	FontTypeApple    uint32 = 0x74727565 // 'true'
	fontTypeTTC      uint32 = 0x74746366 // 'ttcf', font collection
)

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Table tag names are case-sensitive, following the names in the OpenType specification,
// e.g. "name", "head" or "OS/2".
func (otf *Font) Table(tag Tag) Table {
	if otf == nil {
		return nil
	}
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font,
// sorted by tag.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Warnings returns all warnings encountered during font parsing.
// Warnings indicate potential issues that are generally safe to ignore.
func (otf *Font) Warnings() []FontWarning {
	if otf.warnings == nil {
		return []FontWarning{}
	}
	return otf.warnings
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by OpenType as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the tables of an OpenType font.
//
// Tables relevant for finding a font by name and style are 'name' (Naming table),
// 'OS/2' (OS/2 and Windows specific metrics) and 'head' (Font header).
// Any other table is available as an uninterpreted byte view.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treatet as read-only by clients
	NameTag() Tag             // 4-letter name of this table
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	return &genericTable{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
}

// genericTable is the only kind of table type: a named slice of font data.
type genericTable struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
}

// Extent returns offset and byte size of this table within the OpenType font.
func (t *genericTable) Extent() (uint32, uint32) {
	return t.offset, t.length
}

// Binary returns the bytes of this table. Should be treatet as read-only by
// clients, as it is a view into the original data.
func (t *genericTable) Binary() []byte {
	return t.data
}

// NameTag returns the 4-letter name of a table.
func (t *genericTable) NameTag() Tag {
	return t.name
}
