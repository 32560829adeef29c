package tabular

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// inspectJSON reads either a JSON array of objects or JSON lines.
func inspectJSON(path string, limit int) ([]column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("%s is empty", path)
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	var order []string
	byName := map[string]*column{}
	for n := 0; n < limit && dec.More(); n++ {
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c, ok := byName[k]
			if !ok {
				c = &column{name: k, kind: kindEmpty}
				byName[k] = c
				order = append(order, k)
			}
			kind, sample := inferValue(row[k])
			c.kind = mergeKind(c.kind, kind)
			if c.sample == "" && sample != "" {
				c.sample = sample
			}
		}
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%s contains no JSON objects", path)
	}

	cols := make([]column, 0, len(order))
	for _, k := range order {
		cols = append(cols, *byName[k])
	}
	return cols, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

func inferValue(v any) (kind, sample string) {
	switch t := v.(type) {
	case nil:
		return kindEmpty, ""
	case bool:
		return kindBoolean, fmt.Sprint(t)
	case float64:
		// Integral values are exact in a float64 only below 2^53.
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return kindInteger, fmt.Sprint(int64(t))
		}
		return kindFloat, fmt.Sprint(t)
	case string:
		return inferString(t), t
	case map[string]any:
		return kindObject, ""
	case []any:
		return kindArray, ""
	default:
		return kindMixed, ""
	}
}
