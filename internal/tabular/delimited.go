package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func inspectDelimited(path string, comma rune, limit int) ([]column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s is empty", path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	cols := make([]column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		cols[i] = column{name: name, kind: kindEmpty}
	}

	for n := 0; n < limit; n++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for i := range cols {
			if i >= len(record) {
				break
			}
			kind := inferString(record[i])
			cols[i].kind = mergeKind(cols[i].kind, kind)
			if cols[i].sample == "" && kind != kindEmpty {
				cols[i].sample = strings.TrimSpace(record[i])
			}
		}
	}
	return cols, nil
}
