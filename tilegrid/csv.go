package tilegrid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseCSV reads a map written as one row of comma-separated integers per
// line. Blank lines and lines starting with '#' are skipped; a trailing comma
// on a row is tolerated.
func ParseCSV(r io.Reader, opts Options) (*Grid, error) {
	var rows [][]int
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimSuffix(text, ",")
		fields := strings.Split(text, ",")
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("tilegrid: line %d column %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tilegrid: read map: %w", err)
	}

	return From2D(rows, opts)
}

// LoadCSV opens path and parses it with ParseCSV.
func LoadCSV(path string, opts Options) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f, opts)
}
