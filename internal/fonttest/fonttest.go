/*
Package fonttest builds small synthetic OpenType fonts for tests.

The fonts produced carry a valid sfnt header and table directory and may contain
'name', 'OS/2' and 'head' tables. They do not contain any glyphs. Table records
are written in the order given by the client, which makes it possible to produce
unsorted directories or duplicate table records on purpose.
*/
package fonttest

import (
	"encoding/binary"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Signatures for Font.Signature.
const (
	TrueType uint32 = 0x00010000
	CFF      uint32 = 0x4f54544f // 'OTTO'
	TTC      uint32 = 0x74746366 // 'ttcf'
)

// Bits of OS/2 fsSelection and head macStyle.
const (
	FsItalic  uint16 = 1 << 0
	FsBold    uint16 = 1 << 5
	FsRegular uint16 = 1 << 6

	MacBold   uint16 = 1 << 0
	MacItalic uint16 = 1 << 1
)

// Table is a raw font table to be placed into a font.
type Table struct {
	Tag  string
	Data []byte
}

// Font describes a synthetic font.
type Font struct {
	Signature uint32 // defaults to TrueType
	Tables    []Table
}

// Bytes lays out the font: header, table records in the order of f.Tables,
// then table data, each table starting on a 4-byte boundary.
func (f Font) Bytes() []byte {
	sig := f.Signature
	if sig == 0 {
		sig = TrueType
	}
	n := len(f.Tables)
	dirEnd := 12 + 16*n
	size := dirEnd
	offsets := make([]int, n)
	for i, t := range f.Tables {
		offsets[i] = size
		size += pad4(len(t.Data))
	}
	b := make([]byte, size)
	binary.BigEndian.PutUint32(b[0:], sig)
	binary.BigEndian.PutUint16(b[4:], uint16(n))
	for i, t := range f.Tables {
		rec := b[12+16*i:]
		copy(rec[0:4], []byte((t.Tag + "    ")[:4]))
		binary.BigEndian.PutUint32(rec[8:], uint32(offsets[i]))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(t.Data)))
		copy(b[offsets[i]:], t.Data)
	}
	return b
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

// Describe returns the bytes of a font with family name and style, carrying
// a Windows family name record, an OS/2 table and a head table which agree
// on the style.
func Describe(family string, bold, italic bool) []byte {
	var fs, mac uint16
	if bold {
		fs |= FsBold
		mac |= MacBold
	}
	if italic {
		fs |= FsItalic
		mac |= MacItalic
	}
	if !bold && !italic {
		fs = FsRegular
	}
	return Font{Tables: []Table{
		{Tag: "OS/2", Data: OS2(fs)},
		{Tag: "head", Data: Head(mac)},
		{Tag: "name", Data: Name(WindowsFamily(family))},
	}}.Bytes()
}

// --- name ------------------------------------------------------------------

// NameRecord is a record of table 'name' with an already encoded value.
type NameRecord struct {
	Platform uint16
	Encoding uint16
	Language uint16
	NameID   uint16
	Value    []byte
}

// WindowsFamily is a family name record for platform Windows, encoding Unicode BMP,
// language US English.
func WindowsFamily(family string) NameRecord {
	return NameRecord{Platform: 3, Encoding: 1, Language: 0x0409, NameID: 1, Value: UTF16(family)}
}

// MacFamily is a family name record for platform Macintosh, encoding Roman,
// language English.
func MacFamily(family string) NameRecord {
	return NameRecord{Platform: 1, Encoding: 0, Language: 0, NameID: 1, Value: MacRoman(family)}
}

// Name encodes a version 0 'name' table. Records are written in the order given.
func Name(records ...NameRecord) []byte {
	storage := 6 + 12*len(records)
	var strs []byte
	b := make([]byte, storage)
	binary.BigEndian.PutUint16(b[2:], uint16(len(records)))
	binary.BigEndian.PutUint16(b[4:], uint16(storage))
	for i, r := range records {
		rec := b[6+12*i:]
		binary.BigEndian.PutUint16(rec[0:], r.Platform)
		binary.BigEndian.PutUint16(rec[2:], r.Encoding)
		binary.BigEndian.PutUint16(rec[4:], r.Language)
		binary.BigEndian.PutUint16(rec[6:], r.NameID)
		binary.BigEndian.PutUint16(rec[8:], uint16(len(r.Value)))
		binary.BigEndian.PutUint16(rec[10:], uint16(len(strs)))
		strs = append(strs, r.Value...)
	}
	return append(b, strs...)
}

// UTF16 encodes s as UTF-16BE.
func UTF16(s string) []byte {
	rr := utf16.Encode([]rune(s))
	res := make([]byte, len(rr)*2)
	for i, r := range rr {
		res[i*2] = byte(r >> 8)
		res[i*2+1] = byte(r)
	}
	return res
}

// MacRoman encodes s in the Mac OS Roman character set.
// It panics if s contains characters not representable in Mac Roman.
func MacRoman(s string) []byte {
	b, err := charmap.Macintosh.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return b
}

// --- OS/2 and head ---------------------------------------------------------

// OS2 returns a version 4 'OS/2' table (96 bytes) with fsSelection set.
func OS2(fsSelection uint16) []byte {
	b := make([]byte, 96)
	binary.BigEndian.PutUint16(b[0:], 4)   // version
	binary.BigEndian.PutUint16(b[4:], 400) // usWeightClass
	binary.BigEndian.PutUint16(b[6:], 5)   // usWidthClass
	binary.BigEndian.PutUint16(b[62:], fsSelection)
	return b
}

// Head returns a 'head' table (54 bytes) with macStyle set.
func Head(macStyle uint16) []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint16(b[0:], 1)           // majorVersion
	binary.BigEndian.PutUint32(b[12:], 0x5F0F3CF5) // magicNumber
	binary.BigEndian.PutUint16(b[18:], 1000)       // unitsPerEm
	binary.BigEndian.PutUint16(b[44:], macStyle)
	return b
}
