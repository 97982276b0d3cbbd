package life

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"lifereel/internal/core"
)

// ReadFile parses the grid stored at path.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInputFormat, err)
	}
	defer f.Close()
	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse reads one row per line, each character a '0' or '1' digit. Every row
// must have the same length; ragged input is rejected rather than padded.
// Blank lines at the end of the input are ignored.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		cells   []uint8
		width   int
		rows    int
		pending int // blank lines seen since the last data row
	)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			pending++
			continue
		}
		if pending > 0 && rows > 0 {
			return nil, fmt.Errorf("%w: line %d: empty line inside grid", core.ErrInputFormat, line-pending)
		}
		if pending > 0 {
			return nil, fmt.Errorf("%w: line %d: empty line before grid", core.ErrInputFormat, line-pending)
		}
		if rows == 0 {
			width = len(text)
		} else if len(text) != width {
			return nil, fmt.Errorf("%w: line %d: %d columns, expected %d", core.ErrInputFormat, line, len(text), width)
		}
		for i := 0; i < len(text); i++ {
			switch text[i] {
			case '0', '1':
				cells = append(cells, text[i]-'0')
			default:
				return nil, fmt.Errorf("%w: line %d column %d: %q is not 0 or 1", core.ErrInputFormat, line, i+1, text[i])
			}
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInputFormat, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: empty grid", core.ErrInputFormat)
	}
	return &Grid{w: width, h: rows, cells: cells}, nil
}
