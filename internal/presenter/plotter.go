package presenter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// SavePlot writes p to filename. The format follows the file extension
// (png, jpg, tif, pdf, svg, eps).
func SavePlot(p *plot.Plot, w, h vg.Length, filename string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if format == "" {
		return fmt.Errorf("presenter: no file extension in %q", filename)
	}
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return fmt.Errorf("presenter: %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
