/*
Package colormatch loads, resizes and saves the RGB rasters used for colour
transfer.

Every decoded image, whatever its colour model, is converted to *NRGB (three
8-bit channels per pixel, no alpha). The colour transfer engine itself lives in
the transfer sub-package and operates on *NRGB values produced here.
*/
package colormatch

import "fmt"

type ColormatchVersion struct {
	Major, Minor, Patch uint
}

func (v ColormatchVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v ColormatchVersion) Equal(o ColormatchVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

var Version = ColormatchVersion{0, 3, 0}
