package otquery

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontfiles/internal/fonttest"
	"github.com/npillmayer/fontfiles/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameFont(t *testing.T, records ...fonttest.NameRecord) *ot.Font {
	return parseFont(t, fonttest.Font{Tables: []fonttest.Table{
		{Tag: "name", Data: fonttest.Name(records...)},
	}}.Bytes())
}

func family(platform, encoding, language uint16, value []byte) fonttest.NameRecord {
	return fonttest.NameRecord{Platform: platform, Encoding: encoding, Language: language, NameID: 1, Value: value}
}

func TestFamilyNamePriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tests := []struct {
		name     string
		records  []fonttest.NameRecord
		expected string
	}{
		{
			name: "Windows US English wins",
			records: []fonttest.NameRecord{
				fonttest.MacFamily("Mac Name"),
				family(3, 1, 0x0407, fonttest.UTF16("Deutscher Name")),
				family(3, 1, 0x0409, fonttest.UTF16("English Name")),
			},
			expected: "English Name",
		},
		{
			name: "Windows BMP any language",
			records: []fonttest.NameRecord{
				fonttest.MacFamily("Mac Name"),
				family(3, 1, 0x040c, fonttest.UTF16("Nom Français")),
				family(3, 1, 0x0407, fonttest.UTF16("Deutscher Name")),
			},
			expected: "Nom Français",
		},
		{
			name: "Mac Roman English",
			records: []fonttest.NameRecord{
				family(0, 3, 0, fonttest.UTF16("Unicode Name")),
				fonttest.MacFamily("Mac Name"),
			},
			expected: "Mac Name",
		},
		{
			name: "Any remaining record",
			records: []fonttest.NameRecord{
				family(1, 0, 2, fonttest.MacRoman("Nom Mac")),
				family(0, 3, 0, fonttest.UTF16("Unicode Name")),
			},
			expected: "Nom Mac",
		},
		{
			name: "Mac Roman non-ASCII",
			records: []fonttest.NameRecord{
				fonttest.MacFamily("Bodoni Öl"),
			},
			expected: "Bodoni Öl",
		},
		{
			name: "Windows symbol encoding",
			records: []fonttest.NameRecord{
				family(3, 0, 0x0409, fonttest.UTF16("Wingdings")),
			},
			expected: "Wingdings",
		},
		{
			name: "Other name IDs ignored",
			records: []fonttest.NameRecord{
				{Platform: 3, Encoding: 1, Language: 0x0409, NameID: 4, Value: fonttest.UTF16("Full Name Bold")},
				family(1, 0, 0, fonttest.MacRoman("Family")),
			},
			expected: "Family",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fam, err := FamilyName(nameFont(t, tt.records...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, fam)
		})
	}
}

func TestFamilyNameSkipsMalformedRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	oddLength := family(3, 1, 0x0409, []byte{0, 'A', 0})
	unpaired := family(3, 1, 0x0409, []byte{0xd8, 0x00, 0, 'A'})
	unsupported := family(3, 2, 0x0409, []byte("ShiftJIS"))
	empty := family(3, 1, 0x0409, nil)

	t.Run("Fallback to valid record", func(t *testing.T) {
		fam, err := FamilyName(nameFont(t, oddLength, unpaired, unsupported, empty,
			family(3, 1, 0x0407, fonttest.UTF16("Fallback"))))
		require.NoError(t, err)
		assert.Equal(t, "Fallback", fam)
	})

	t.Run("Only malformed records", func(t *testing.T) {
		_, err := FamilyName(nameFont(t, oddLength, unpaired, unsupported, empty))
		assert.True(t, errors.Is(err, ot.ErrNoFamilyName), "expected no family name, have %v", err)
	})

	t.Run("No family records", func(t *testing.T) {
		_, err := FamilyName(nameFont(t,
			fonttest.NameRecord{Platform: 3, Encoding: 1, Language: 0x0409, NameID: 2, Value: fonttest.UTF16("Regular")}))
		assert.True(t, errors.Is(err, ot.ErrNoFamilyName), "expected no family name, have %v", err)
	})

	t.Run("Truncated name table", func(t *testing.T) {
		otf := parseFont(t, fonttest.Font{Tables: []fonttest.Table{
			{Tag: "name", Data: []byte{0, 0, 0, 5}},
		}}.Bytes())
		_, err := FamilyName(otf)
		assert.True(t, errors.Is(err, ot.ErrNoFamilyName), "expected no family name, have %v", err)
	})

	t.Run("String storage out of bounds", func(t *testing.T) {
		table := fonttest.Name(fonttest.WindowsFamily("Cut"))
		otf := parseFont(t, fonttest.Font{Tables: []fonttest.Table{
			{Tag: "name", Data: table[:len(table)-2]},
		}}.Bytes())
		_, err := FamilyName(otf)
		assert.True(t, errors.Is(err, ot.ErrNoFamilyName), "expected no family name, have %v", err)
	})

	t.Run("Missing name table", func(t *testing.T) {
		otf := parseFont(t, fonttest.Font{Tables: []fonttest.Table{
			{Tag: "head", Data: fonttest.Head(0)},
		}}.Bytes())
		_, err := FamilyName(otf)
		assert.True(t, errors.Is(err, ot.ErrMissingNameTable), "expected missing name table, have %v", err)
	})
}
