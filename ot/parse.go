package ot

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

const (
	headerSize      = 12 // sfntVersion, numTables, searchRange, entrySelector, rangeShift
	tableRecordSize = 16 // tag, checksum, offset, length
)

// Parse reads the header and table directory of an OpenType font from a byte slice.
// No table content is interpreted. The Font returned holds views into font,
// which therefore has to stay unmodified while the Font is in use.
//
// Parse returns a *FormatError of kind BadSignature, TruncatedDirectory or
// TableOutOfBounds if the directory cannot be read safely.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	src := binarySegm(font)
	fontType, err := src.u32(0)
	if err != nil {
		return nil, errFontFormat(BadSignature, 0, 0, "font data too short: %d bytes", len(src))
	}
	switch fontType {
	case FontTypeTrueType, FontTypeCFF, FontTypeApple:
	case fontTypeTTC:
		return nil, errFontFormat(BadSignature, 0, 0, "font collections not supported")
	default:
		return nil, errFontFormat(BadSignature, 0, 0, "font type not supported: %x", fontType)
	}
	count, err := src.u16(4)
	if err != nil || len(src) < headerSize {
		return nil, errFontFormat(TruncatedDirectory, 0, 0, "header truncated: %d bytes", len(src))
	}
	h := FontHeader{FontType: fontType, TableCount: count}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	buf, err := src.view(headerSize, tableRecordSize*int(h.TableCount))
	if err != nil {
		return nil, errFontFormat(TruncatedDirectory, 0, headerSize,
			"%d table records exceed font size %d", h.TableCount, len(src))
	}
	wc := &warningCollector{}
	otf := &Font{Header: h, tables: make(map[Tag]Table, h.TableCount)}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[tableRecordSize:] {
		tag := MakeTag(b)
		if tag < prevTag {
			wc.addWarning(tag, "table records not sorted by tag", 0)
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			wc.addWarning(tag, "table offset not on 4-byte boundary", off)
		}
		// Validate table bounds before slicing to prevent panic
		tableEnd, ok := checkedAddUint32(off, size)
		if !ok {
			return nil, errFontFormat(TableOutOfBounds, tag, off, "size calculation overflow")
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, errFontFormat(TableOutOfBounds, tag, off,
				"bounds [%d:%d] exceed font size %d", off, tableEnd, len(src))
		}
		if _, dup := otf.tables[tag]; dup {
			// lenient parsers let the last record in file order win
			wc.addWarning(tag, "duplicate table record, replacing previous one", off)
		}
		otf.tables[tag] = newTable(tag, src[off:tableEnd], off, size)
	}
	otf.warnings = wc.warnings
	return otf, nil
}
