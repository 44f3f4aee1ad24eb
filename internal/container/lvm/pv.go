package lvm

import "github.com/blockforge/storagecore/internal/units"

// DefaultPEStart is the data-alignment offset lvm reserves at the
// start of a PV for its own metadata area, absent an explicit
// --dataalignment request.
var DefaultPEStart = units.NewSize(1024 * 1024)

// PVUsableSpace is blivet's VG._get_pv_usable_space: a PV's raw size
// minus its metadata area, doubled when the PV itself sits on an MD
// array (lvm aligns to both its own metadata area and the array's
// chunk geometry in that case).
func PVUsableSpace(pvSize units.Size, peStart units.Size, onMDArray bool) units.Size {
	overhead := peStart
	if onMDArray {
		overhead = overhead.MulScalar(2)
	}
	return pvSize.Sub(overhead)
}
