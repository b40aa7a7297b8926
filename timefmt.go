package tschart

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TimeFormat formats a tick timestamp.
type TimeFormat func(time.Time) string

func emptyFormat(time.Time) string {
	return ""
}

// MakeTimeFormat compiles a strftime-like format (%Y-%m-%d %H:%M) into a
// TimeFormat. Text outside of the specifiers is written as is.
func MakeTimeFormat(format string) (TimeFormat, error) {
	parts, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	return func(t time.Time) string {
		var w strings.Builder
		for _, p := range parts {
			w.WriteString(p(t))
		}
		return w.String()
	}, nil
}

const percent = '%'

var specifiers = map[rune]string{
	'D': "01/02/06", // month/day/year
	'Y': "2006",     // year four digits
	'y': "06",       // year two digits
	'm': "01",       // month two digits
	'B': "January",  // full month name
	'b': "Jan",      // abreviate month name
	'h': "Jan",      // abreviate month name
	'd': "02",       // day of month
	'e': "_2",       // day of month space padded
	'j': "002",      // day of year
	'A': "Monday",   // full week day name
	'a': "Mon",      // abreviate week day name
	'H': "15",       // hours 00-23
	'I': "03",       // hours 00-12
	'M': "04",       // minute two digits
	'S': "05",       // second two digits
	'p': "PM",       // AM or PM
	'T': "15:04:05",
	'F': "2006-01-02",
	'z': "-0700",
	'Z': "MST",
	'c': "Mon Jan 2 15:04:05 2006",
	'r': "03:04:05 PM",
	'R': "15:04",
}

// specifiers that have no layout in the time package.
var writers = map[rune]func(time.Time) string{
	'k': func(t time.Time) string { // hours 0-23 space padded
		return fmt.Sprintf("%2d", t.Hour())
	},
	'n': literal("\n"),
	't': literal("\t"),
}

func literal(str string) func(time.Time) string {
	return func(time.Time) string {
		return str
	}
}

func layout(str string) func(time.Time) string {
	return func(t time.Time) string {
		return t.Format(str)
	}
}

func parseFormat(str string) ([]func(time.Time) string, error) {
	var (
		r     = strings.NewReader(str)
		w     strings.Builder
		parts []func(time.Time) string
	)
	flush := func() {
		if w.Len() > 0 {
			parts = append(parts, literal(w.String()))
			w.Reset()
		}
	}
	for r.Len() > 0 {
		x, _, _ := r.ReadRune()
		if x == utf8.RuneError {
			return nil, fmt.Errorf("invalid character found in format string")
		}
		if x != percent {
			w.WriteRune(x)
			continue
		}
		if r.Len() == 0 {
			return nil, fmt.Errorf("missing specifier after %%")
		}
		x, _, _ = r.ReadRune()
		if x == percent {
			w.WriteRune(x)
			continue
		}
		if fn, ok := writers[x]; ok {
			flush()
			parts = append(parts, fn)
			continue
		}
		str, ok := specifiers[x]
		if !ok {
			return nil, fmt.Errorf("invalid specifier found %c", x)
		}
		flush()
		parts = append(parts, layout(str))
	}
	flush()
	return parts, nil
}
