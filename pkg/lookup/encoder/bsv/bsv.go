// Package bsv loads encoders from bar-separated "CUI|value" files.
package bsv

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cognicore/termlookup/pkg/lookup/dictionary"
	"github.com/cognicore/termlookup/pkg/lookup/encoder"
	"github.com/cognicore/termlookup/pkg/lookup/encoder/memory"
	"github.com/cognicore/termlookup/pkg/lookup/internalerr"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
)

// Load reads path into an in-memory encoder. Any malformed row fails the load.
func Load(path, name string, class encoder.Class, logger *zerolog.Logger) (*memory.Encoder, error) {
	values, err := ReadValues(path)
	if err != nil {
		return nil, fmt.Errorf("encoder %s: %w", name, err)
	}
	e := memory.New(name, class, values)
	log := logging.Or(logger, "encoder")
	if e.Len() == 0 {
		log.Warn().Str("encoder", name).Str("path", path).Msg("encoder file has no rows")
	}
	return e, nil
}

// ReadValues groups the values of a "CUI|value" file by concept code.
func ReadValues(path string) (map[int64][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open encoder file: %w: %v", internalerr.ErrLoad, err)
	}
	defer f.Close()

	values := make(map[int64][]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cui, value, ok := strings.Cut(line, "|")
		value = strings.TrimSpace(value)
		if !ok || value == "" || strings.Contains(value, "|") {
			return nil, fmt.Errorf("%s:%d: want CUI|value: %w", path, lineNo, internalerr.ErrInvalidInput)
		}
		code, err := dictionary.ParseCUI(cui)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		values[code] = append(values[code], value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read encoder file %s: %w", path, err)
	}
	return values, nil
}
