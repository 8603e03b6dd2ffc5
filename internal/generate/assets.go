package generate

import "sort"

// Size is an asset's pixel dimensions.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sizes maps asset-type identifiers to their dimensions.
var Sizes = map[string]Size{
	"social-post":     {Width: 1080, Height: 1080},
	"story":           {Width: 1080, Height: 1920},
	"banner":          {Width: 1200, Height: 628},
	"linkedin-banner": {Width: 1584, Height: 396},
	"email-header":    {Width: 600, Height: 200},
	"thumbnail":       {Width: 1280, Height: 720},
	"leaderboard":     {Width: 728, Height: 90},
}

// SizeOf returns the dimensions of assetType.
func SizeOf(assetType string) (Size, bool) {
	s, ok := Sizes[assetType]
	return s, ok
}

// AssetTypes returns the known asset types in sorted order.
func AssetTypes() []string {
	out := make([]string, 0, len(Sizes))
	for k := range Sizes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
