package util

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// Version of the tool or of the report format. Report formats only carry a
// major and a minor number.
type Version struct {
	Major uint
	Minor uint
	Patch uint

	hasPatch bool
}

// ToolVersion is the version of this tool.
var ToolVersion = Version{1, 0, 0, true}

// ReportFormatVersion is the version of the report format that is generated.
var ReportFormatVersion = Version{Major: 0, Minor: 2}

var versionRegexp = regexp.MustCompile(`^v(\d+)\.(\d+)(?:\.(\d+))?$`)

// ParseVersion parses strings of the form vMAJOR.MINOR or vMAJOR.MINOR.PATCH.
func ParseVersion(s string) (Version, error) {
	match := versionRegexp.FindStringSubmatch(s)
	if match == nil {
		return Version{}, errors.Errorf("invalid version string %q", s)
	}

	parts := []uint{}
	for _, m := range match[1:] {
		if m == "" {
			continue
		}
		part, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			return Version{}, errors.Wrapf(err, "invalid version string %q", s)
		}
		parts = append(parts, uint(part))
	}
	v := Version{Major: parts[0], Minor: parts[1]}
	if len(parts) == 3 {
		v.Patch = parts[2]
		v.hasPatch = true
	}
	return v, nil
}

func (v Version) String() string {
	if v.hasPatch {
		return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}
