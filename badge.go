package icon

import "github.com/sugarlabs/icon/utils"

// BadgeRatio is the badge size relative to the width of its icon.
const BadgeRatio = 0.45

// BadgePlacement positions a badge relative to the top-left corner of the
// base icon, in the icon's natural pixels.
type BadgePlacement struct {
	Size    int
	OffsetX int
	OffsetY int
	// Padding is the margin the canvas needs on every side so that the
	// badge is not clipped by the icon bounds.
	Padding int
}

// BadgeSize returns the badge size used for an icon of pixelSize pixels.
func BadgeSize(pixelSize int) int {
	return int(BadgeRatio * float64(pixelSize))
}

// PlaceBadge centers a badge on the attach point of a width×height icon.
func PlaceBadge(attachX, attachY float64, width, height int) BadgePlacement {
	size := BadgeSize(width)
	half := float64(size) / 2

	p := BadgePlacement{
		Size:    size,
		OffsetX: int(attachX*float64(width) - half),
		OffsetY: int(attachY*float64(height) - half),
	}
	p.Padding = utils.Max(0, utils.Max(
		utils.Max(-p.OffsetX, -p.OffsetY),
		utils.Max(p.OffsetX+size-width, p.OffsetY+size-height),
	))
	return p
}
