// Package dateutil formats the "generated on" stamp of a style guide.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 64

// DefaultFormat is used when "auto" is given without a format.
const DefaultFormat = "YYYY-MM-DD"

// autoPrefix marks a value that is computed from the build time.
const autoPrefix = "auto"

// Presets are named shortcuts accepted after "auto:".
var Presets = map[string]string{
	"iso":       "YYYY-MM-DD",
	"european":  "DD/MM/YYYY",
	"us":        "MM/DD/YYYY",
	"long":      "MMMM D, YYYY",
	"timestamp": "YYYY-MM-DD HH:mm",
}

// layouts maps a run of one token letter to its Go layout, keyed by letter
// then run length.
var layouts = map[byte]map[int]string{
	'Y': {2: "06", 4: "2006"},
	'M': {1: "1", 2: "01", 3: "Jan", 4: "January"},
	'D': {1: "2", 2: "02"},
	'H': {2: "15"},
	'm': {2: "04"},
	's': {2: "05"},
}

// Layout converts a format such as "DD/MM/YYYY HH:mm" to a Go time layout.
//
// Tokens: YYYY YY, MMMM MMM MM M, DD D, HH, mm, ss. Text inside brackets is
// copied literally: "[Built] YYYY" keeps "Built". Other characters pass
// through, as does a lone letter with no layout ("s" in "as"). A longer run
// with no layout (e.g. "YYY") is an error.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]

		if c == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		byLen, isToken := layouts[c]
		if !isToken {
			b.WriteByte(c)
			i++
			continue
		}

		run := 1
		for i+run < len(format) && format[i+run] == c {
			run++
		}
		layout, ok := byLen[run]
		if !ok && run == 1 {
			layout, ok = string(c), true
		}
		if !ok {
			return "", fmt.Errorf("%w: unsupported token %q", ErrInvalidDateFormat, format[i:i+run])
		}
		b.WriteString(layout)
		i += run
	}

	return b.String(), nil
}

// Resolve turns a configured date value into the stamp shown in the document.
//   - "" stays empty
//   - "auto" formats now with DefaultFormat
//   - "auto:FORMAT" formats now with FORMAT or a preset name
//   - anything else is returned unchanged
func Resolve(value string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < len(autoPrefix) || !strings.EqualFold(trimmed[:len(autoPrefix)], autoPrefix) {
		return value, nil
	}

	format, ok := strings.CutPrefix(trimmed[len(autoPrefix):], ":")
	switch {
	case trimmed[len(autoPrefix):] == "":
		format = DefaultFormat
	case !ok:
		// "automatic", "autumn" and the like are literal text.
		return value, nil
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty after %q", ErrInvalidDateFormat, autoPrefix+":")
	}

	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
