package infrastructure

import (
	"fmt"
	"strings"

	"curriculo-generator/internal/domain"
)

const (
	minScale = 0.1
	maxScale = 2.0
)

type paperSize struct {
	name   string
	width  float64 // inches
	height float64
}

var paperSizes = map[string]paperSize{
	// A4: 210mm x 297mm -> inches: 8.27 x 11.69
	"A4":     {name: "A4", width: 8.27, height: 11.69},
	"A5":     {name: "A5", width: 5.83, height: 8.27},
	"LETTER": {name: "Letter", width: 8.5, height: 11},
	"LEGAL":  {name: "Legal", width: 8.5, height: 14},
}

// resolvePage validates opts, defaulting an empty page size to A4 and a zero
// scale to 1.
func resolvePage(opts domain.RenderOptions) (paperSize, float64, error) {
	name := strings.ToUpper(strings.TrimSpace(opts.PageSize))
	if name == "" {
		name = "A4"
	}
	size, ok := paperSizes[name]
	if !ok {
		return paperSize{}, 0, fmt.Errorf("unsupported page size: %s", opts.PageSize)
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1.0
	}
	if scale < minScale || scale > maxScale {
		return paperSize{}, 0, fmt.Errorf("scale must be between %.1f and %.1f, got %g", minScale, maxScale, scale)
	}
	return size, scale, nil
}
