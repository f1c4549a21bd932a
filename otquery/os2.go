package otquery

import (
	"encoding/binary"

	"github.com/npillmayer/fontfiles/ot"
)

// OS2TableInfo is a typed query view over the leading fields of OpenType table 'OS/2',
// up to and including fsSelection.
type OS2TableInfo struct {
	Version       uint16
	XAvgCharWidth int16
	WeightClass   uint16
	WidthClass    uint16
	FsType        uint16
	FamilyClass   int16
	Panose        [10]byte
	VendorID      ot.Tag
	FsSelection   uint16
}

// Flags of field fsSelection in table 'OS/2'.
const (
	FsSelectionItalic  uint16 = 1 << 0
	FsSelectionBold    uint16 = 1 << 5
	FsSelectionRegular uint16 = 1 << 6
)

// os2MinSize covers every field up to fsSelection at offset 62.
const os2MinSize = 64

// OS2Info decodes the leading fields of table 'OS/2' from raw bytes.
// Returns (info, true) on success, or (zero, false) if the table is missing or
// too short to contain fsSelection.
func OS2Info(otf *ot.Font) (OS2TableInfo, bool) {
	var info OS2TableInfo
	if otf == nil {
		return info, false
	}
	table := otf.Table(ot.T("OS/2"))
	if table == nil {
		return info, false
	}
	b := table.Binary()
	if len(b) < os2MinSize {
		tracer().Debugf("OS/2 table too short: %d", len(b))
		return info, false
	}
	info.Version = binary.BigEndian.Uint16(b[0:2])
	info.XAvgCharWidth = int16(binary.BigEndian.Uint16(b[2:4]))
	info.WeightClass = binary.BigEndian.Uint16(b[4:6])
	info.WidthClass = binary.BigEndian.Uint16(b[6:8])
	info.FsType = binary.BigEndian.Uint16(b[8:10])
	info.FamilyClass = int16(binary.BigEndian.Uint16(b[30:32]))
	copy(info.Panose[:], b[32:42])
	info.VendorID = ot.MakeTag(b[58:62])
	info.FsSelection = binary.BigEndian.Uint16(b[62:64])
	return info, true
}
