package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format identifies the output shape produced by azd env get-values.
type Format int

const (
	// FormatJSON is the JSON object shape ('--output json').
	FormatJSON Format = iota
	// FormatKeyValue is the line-oriented KEY=VALUE shape emitted by older
	// azd versions that lack the --output flag.
	FormatKeyValue
)

// String returns the format name for logging.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatKeyValue:
		return "key-value"
	default:
		return "unknown"
	}
}

// Parse decodes provider output in the given format.
func Parse(format Format, output []byte) (map[string]string, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(output)
	case FormatKeyValue:
		return ParseKeyValue(output)
	default:
		return nil, fmt.Errorf("%w: unsupported format %d", ErrProviderParse, format)
	}
}

// ParseJSON decodes a JSON object of string values.
func ParseJSON(output []byte) (map[string]string, error) {
	var values map[string]string
	if err := json.Unmarshal(output, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderParse, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// ParseKeyValue decodes line-oriented "KEY=value" output (one entry per
// line). Blank lines and comments are skipped. Entries with an empty value
// are kept so a partially provisioned deployment still yields its keys.
func ParseKeyValue(output []byte) (map[string]string, error) {
	values := make(map[string]string)

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx <= 0 {
			// No '=' or '=' at start of line.
			continue
		}

		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}

		values[key] = Unquote(line[idx+1:])
	}

	return values, nil
}

// Unquote strips exactly one layer of matching surrounding quotes (double
// or single) from a value. Inner quotes are preserved.
func Unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
