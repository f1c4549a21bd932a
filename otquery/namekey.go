package otquery

import "golang.org/x/image/font/sfnt"

// PlatformID is the platform of a NameRecord in OpenType table 'name'.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is the platform-specific encoding of a NameRecord.
type EncodingID uint16

const (
	EncodingIDMacRoman      EncodingID = 0 // platform Macintosh
	EncodingIDWindowsSymbol EncodingID = 0 // platform Windows
	EncodingIDWindowsBMP    EncodingID = 1 // platform Windows
	EncodingIDWindowsUCS4   EncodingID = 10
)

// Language IDs used for choosing between records.
const (
	LanguageIDWindowsEnUS uint16 = 0x0409
	LanguageIDMacEnglish  uint16 = 0
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

// NameRecord is a decoded entry of table 'name'.
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	NameID   sfnt.NameID
	Value    string
}

func (r NameRecord) key() nameKey {
	return nameKey{Platform: r.Platform, Encoding: r.Encoding, Language: r.Language, Name: r.NameID}
}
