package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted release number such as 1.4.2
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Revision int
}

// String returns the version as Major.Minor.Patch, with the revision appended when set
func (v Version) String() string {
	ver := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Revision != 0 {
		ver += "." + strconv.Itoa(v.Revision)
	}
	return ver
}

// Parse reads a version or release tag (e.g., "v1.2.3"). Two to four parts are
// accepted; missing parts are zero.
func Parse(tag string) (Version, error) {
	tagVersion := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	parts := strings.Split(tagVersion, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, fmt.Errorf("invalid version format: %q (expected vX.Y[.Z[.R]])", tag)
	}

	nums := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version part %q in %q", part, tag)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Revision: nums[3]}, nil
}

// MustParse is Parse for compiled-in versions; it panics on a malformed one
func MustParse(tag string) Version {
	v, err := Parse(tag)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare compares v with other on the first parts numbers only (1-4).
// It returns -1 if v is older, 0 if equal, 1 if v is newer.
func (v Version) Compare(other Version, parts int) int {
	a := []int{v.Major, v.Minor, v.Patch, v.Revision}
	b := []int{other.Major, other.Minor, other.Patch, other.Revision}

	for i := 0; i < parts && i < len(a); i++ {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	return 0
}
