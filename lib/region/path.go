package region

import (
	"errors"
	"fmt"
	"strings"
)

// Separator separates the names of a region path
const Separator = "/"

// ErrInvalidName is returned for region names that are empty or contain the separator
var ErrInvalidName = errors.New("invalid region name")

// ValidateName checks that name can be used as a region name
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: name %q must not contain %q", ErrInvalidName, name, Separator)
	}
	return nil
}

// SplitPath splits a region path into its names. Leading, trailing and
// repeated separators are ignored, so "/a/b", "a/b" and "/a//b/" are equal
func SplitPath(path string) []string {
	parts := strings.Split(path, Separator)
	names := parts[:0]
	for _, p := range parts {
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// JoinPath returns the full path of the given names or paths, e.g.
// JoinPath("a", "b") and JoinPath("/a/", "b") both return "/a/b"
func JoinPath(elems ...string) string {
	var names []string
	for _, e := range elems {
		names = append(names, SplitPath(e)...)
	}
	return Separator + strings.Join(names, Separator)
}
