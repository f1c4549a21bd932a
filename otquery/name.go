package otquery

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/fontfiles/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

var errMalformedName = errors.New("malformed name record")

// NamesRange yields decoded records from a font's OpenType `name` table,
// in table order.
//
// Only currently supported encodings are yielded (UTF-16BE for the Unicode and
// Windows platforms, Mac Roman for the Macintosh platform), and malformed or
// out-of-bounds records are skipped.
func NamesRange(otf *ot.Font) iter.Seq[NameRecord] {
	names := checkNameTableSafe(otf)
	return func(yield func(NameRecord) bool) {
		if names == nil {
			return
		}
		count := int(u16(names[2:4])) // number of name records
		stringStorageOffset := int(u16(names[4:6]))
		for i := range count {
			recordSlice := names[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			rec := NameRecord{
				Platform: PlatformID(u16(recordSlice[0:2])),
				Encoding: EncodingID(u16(recordSlice[2:4])),
				Language: u16(recordSlice[4:6]),
				NameID:   sfnt.NameID(u16(recordSlice[6:8])),
			}
			strLen := int(u16(recordSlice[8:10]))
			recordOffset := int(u16(recordSlice[10:12]))
			start := stringStorageOffset + recordOffset
			end := start + strLen
			if end > len(names) {
				tracer().Debugf("name record %d out of bounds: [%d:%d]", i, start, end)
				continue
			}
			stringValue, err := decodeName(rec.key(), names[start:end])
			if err != nil {
				tracer().Debugf("name record %d (%d/%d/%#x/%d) skipped: %v", i,
					rec.Platform, rec.Encoding, rec.Language, rec.NameID, err)
				continue
			}
			rec.Value = stringValue
			if !yield(rec) {
				return
			}
		}
	}
}

// FamilyName selects the font family name (name ID 1) from table 'name'.
//
// If more than one record carries a family name, records are chosen in this order
// of priority:
//
//  1. Windows platform, Unicode BMP encoding, US English
//  2. Windows platform, Unicode BMP encoding, any language
//  3. Macintosh platform, Roman encoding, English
//  4. any other decodable record, in table order
//
// FamilyName returns an *ot.FormatError of kind MissingNameTable if the font has
// no 'name' table, and of kind NoFamilyName if no record qualifies.
func FamilyName(otf *ot.Font) (string, error) {
	if otf.Table(ot.T("name")) == nil {
		return "", &ot.FormatError{Kind: ot.MissingNameTable, Table: ot.T("name")}
	}
	var candidates []NameRecord
	for rec := range NamesRange(otf) {
		if rec.NameID == sfnt.NameIDFamily {
			candidates = append(candidates, rec)
		}
	}
	for _, tier := range familyNameTiers {
		for _, rec := range candidates {
			if tier(rec.key()) {
				return rec.Value, nil
			}
		}
	}
	return "", &ot.FormatError{
		Kind:  ot.NoFamilyName,
		Table: ot.T("name"),
		Issue: "no decodable family name record",
	}
}

var familyNameTiers = []func(nameKey) bool{
	func(k nameKey) bool {
		return k.Platform == PlatformIDWindows && k.Encoding == EncodingIDWindowsBMP &&
			k.Language == LanguageIDWindowsEnUS
	},
	func(k nameKey) bool {
		return k.Platform == PlatformIDWindows && k.Encoding == EncodingIDWindowsBMP
	},
	func(k nameKey) bool {
		return k.Platform == PlatformIDMacintosh && k.Encoding == EncodingIDMacRoman &&
			k.Language == LanguageIDMacEnglish
	},
	func(nameKey) bool {
		return true
	},
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access,
// no empty tables, etc. It returns the table's bytes, or nil.
func checkNameTableSafe(otf *ot.Font) []byte {
	if otf == nil {
		return nil
	}
	table := otf.Table(ot.T("name"))
	if table == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	b := table.Binary()
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	strOff := int(u16(b[4:6]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	recordsEnd := nameHeaderSize + count*nameRecordSize
	if recordsEnd > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return b
}

// decodeName decodes the bytes of a name record according to its platform and
// encoding. Unsupported encodings and malformed byte sequences result in an error.
func decodeName(key nameKey, str []byte) (string, error) {
	var s string
	var err error
	switch {
	case key.Platform == PlatformIDUnicode:
		s, err = decodeNameUTF16(str)
	case key.Platform == PlatformIDWindows && (key.Encoding == EncodingIDWindowsSymbol ||
		key.Encoding == EncodingIDWindowsBMP || key.Encoding == EncodingIDWindowsUCS4):
		s, err = decodeNameUTF16(str)
	case key.Platform == PlatformIDMacintosh && key.Encoding == EncodingIDMacRoman:
		s, err = decodeNameMacRoman(str)
	default:
		return "", fmt.Errorf("unsupported encoding %d/%d", key.Platform, key.Encoding)
	}
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: empty string", errMalformedName)
	}
	return s, nil
}

func decodeNameUTF16(str []byte) (string, error) {
	if len(str)%2 != 0 {
		return "", fmt.Errorf("%w: odd length %d for UTF-16", errMalformedName, len(str))
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	if strings.ContainsRune(string(s), utf8.RuneError) {
		return "", fmt.Errorf("%w: invalid UTF-16 sequence", errMalformedName)
	}
	return string(s), nil
}

func decodeNameMacRoman(str []byte) (string, error) {
	s, err := charmap.Macintosh.NewDecoder().Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding Mac Roman error: %v", err)
	}
	return string(s), nil
}
