package presenter

import (
	"encoding/csv"
	"os"
	"strconv"

	"boundary-go/pkg/boundary"
)

// SaveGridCSV writes one "x,y,label" record per grid cell, row-major.
func SaveGridCSV(g *boundary.LabelGrid, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"x", "y", "label"}); err != nil {
		return err
	}
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		y := strconv.FormatFloat(g.Y(r), 'f', -1, 64)
		for c := 0; c < cols; c++ {
			record := []string{
				strconv.FormatFloat(g.X(c), 'f', -1, 64),
				y,
				strconv.Itoa(g.At(r, c)),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
