package chunk

import (
	"regexp"
	"strconv"
)

var rangeRegex = regexp.MustCompile(`(\d+)-(\d*)`)

// Range is a requested byte interval. The zero value means "from the
// beginning, to the end of the file".
type Range struct {
	Start  int64
	End    int64
	HasEnd bool
}

// ParseRange reads a Range header in the form bytes=<start>-<end>, where
// end is optional. Anything that does not match is treated as no range.
func ParseRange(header string) Range {
	if header == "" {
		return Range{}
	}

	match := rangeRegex.FindStringSubmatch(header)
	if match == nil {
		return Range{}
	}

	start, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return Range{}
	}

	rng := Range{Start: start}
	if match[2] != "" {
		end, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			return Range{}
		}

		rng.End = end
		rng.HasEnd = true
	}

	return rng
}
