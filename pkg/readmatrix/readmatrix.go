package readmatrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var ErrNoData = errors.New("readmatrix: no data rows")

// ReadMatrix reads a numeric table from filename. Fields are separated by
// whitespace or commas; blank lines and lines starting with '#' are
// skipped, as is a leading header line with non-numeric fields.
func ReadMatrix(filename string) (*mat.Dense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a numeric table from r, see ReadMatrix.
func Parse(r io.Reader) (*mat.Dense, error) {
	var rows [][]float64
	scanner := bufio.NewScanner(r)
	lineNo := 0
	seenHeader := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitFields(line)

		// only the first non-comment line may be a header
		if !seenHeader && len(rows) == 0 {
			seenHeader = true
			if !allNumeric(fields) {
				continue
			}
		}

		row := make([]float64, len(fields))
		for i, field := range fields {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse float at line %d, column %d: %w", lineNo, i+1, err)
			}
			row[i] = val
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("inconsistent number of columns at line %d: expected %d, got %d",
				lineNo, len(rows[0]), len(row))
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	cols := len(rows[0])
	flatData := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		flatData = append(flatData, row...)
	}
	return mat.NewDense(len(rows), cols, flatData), nil
}

// ReadDataset reads a labeled table and returns the two feature columns
// xCol, yCol as an Nx2 matrix and labelCol as class indices. Negative
// column numbers count from the last column.
func ReadDataset(filename string, xCol, yCol, labelCol int) (*mat.Dense, []int, error) {
	m, err := ReadMatrix(filename)
	if err != nil {
		return nil, nil, err
	}
	return SplitLabels(m, xCol, yCol, labelCol)
}

// SplitLabels extracts features and labels from a table already in memory.
func SplitLabels(m mat.Matrix, xCol, yCol, labelCol int) (*mat.Dense, []int, error) {
	r, c := m.Dims()
	idx := [3]int{xCol, yCol, labelCol}
	for i, col := range idx {
		if col < 0 {
			col += c
		}
		if col < 0 || col >= c {
			return nil, nil, fmt.Errorf("column %d out of range for %d columns", idx[i], c)
		}
		idx[i] = col
	}

	X := mat.NewDense(r, 2, nil)
	X.SetCol(0, mat.Col(nil, idx[0], m))
	X.SetCol(1, mat.Col(nil, idx[1], m))

	labels := make([]int, r)
	for i := range r {
		v := m.At(i, idx[2])
		if v != math.Trunc(v) {
			return nil, nil, fmt.Errorf("label %v in row %d is not a class index", v, i+1)
		}
		labels[i] = int(v)
	}
	return X, labels, nil
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
}

func allNumeric(fields []string) bool {
	for _, field := range fields {
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return false
		}
	}
	return true
}
