package ot

import "fmt"

// ErrorKind classifies format errors found in a font's binary data.
type ErrorKind int

const (
	// BadSignature: the leading 4 bytes are not a recognized sfnt version tag.
	BadSignature ErrorKind = iota + 1
	// TruncatedDirectory: the declared table count reads past the end of the data.
	TruncatedDirectory
	// TableOutOfBounds: a table record points outside of the font's data.
	TableOutOfBounds
	// MissingNameTable: the font has no 'name' table.
	MissingNameTable
	// NoFamilyName: no usable family name record could be found in table 'name'.
	NoFamilyName
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case BadSignature:
		return "bad signature"
	case TruncatedDirectory:
		return "truncated table directory"
	case TableOutOfBounds:
		return "table out of bounds"
	case MissingNameTable:
		return "missing name table"
	case NoFamilyName:
		return "no family name"
	default:
		return "unknown format error"
	}
}

// Sentinel values for matching format errors with errors.Is, e.g.
//
//	if errors.Is(err, ot.ErrTruncatedDirectory) { … }
var (
	ErrBadSignature       = &FormatError{Kind: BadSignature}
	ErrTruncatedDirectory = &FormatError{Kind: TruncatedDirectory}
	ErrTableOutOfBounds   = &FormatError{Kind: TableOutOfBounds}
	ErrMissingNameTable   = &FormatError{Kind: MissingNameTable}
	ErrNoFamilyName       = &FormatError{Kind: NoFamilyName}
)

// FormatError represents an error encountered while reading a font's binary data.
// A FormatError is always scoped to a single font file.
type FormatError struct {
	Kind   ErrorKind // classification of the error
	Table  Tag       // the table where the error occurred (0 for the header/directory)
	Issue  string    // human-readable description of the issue
	Offset uint32    // byte offset in the font file where the error occurred (0 if unknown)
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	where := "header"
	if e.Table != 0 {
		where = e.Table.String()
	}
	if e.Offset > 0 {
		return fmt.Sprintf("OpenType font format [%s] %s at offset %d: %s", e.Kind, where, e.Offset, e.Issue)
	}
	if e.Issue == "" {
		return fmt.Sprintf("OpenType font format [%s] %s", e.Kind, where)
	}
	return fmt.Sprintf("OpenType font format [%s] %s: %s", e.Kind, where, e.Issue)
}

// Is reports whether target is a FormatError of the same kind.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(kind ErrorKind, table Tag, offset uint32, format string, args ...any) error {
	return &FormatError{
		Kind:   kind,
		Table:  table,
		Issue:  fmt.Sprintf(format, args...),
		Offset: offset,
	}
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The OpenType table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// warningCollector accumulates warnings during font parsing.
type warningCollector struct {
	warnings []FontWarning
}

func (wc *warningCollector) addWarning(table Tag, issue string, offset uint32) {
	tracer().Debugf("%s: %s", table, issue)
	wc.warnings = append(wc.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}
