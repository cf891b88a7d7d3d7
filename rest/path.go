// Copyright (c) 2025 Foodpoint Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"path"
)

// PathElement represents a component of a URL path.
// It can be either a static path segment or a dynamic path parameter.
type PathElement interface {
	pathElement() string
}

// PathSegment is a static component of a URL path.
type PathSegment string

func (s PathSegment) pathElement() string {
	return string(s)
}

type pathParam string

func (p pathParam) pathElement() string {
	return "{" + string(p) + "}"
}

type trailingSlash struct{}

func (trailingSlash) pathElement() string {
	return ""
}

// Path represents a URL path composed of static segments and dynamic
// parameters. Paths are built using [BasePath] and extended with
// [Path.Segment], [Path.Param] and [Path.Slash].
type Path []PathElement

// BasePath creates a new path starting with the given segment.
func BasePath(s string) Path {
	return []PathElement{PathSegment(s)}
}

// Segment appends a static path segment to the path.
func (p Path) Segment(s string) Path {
	return append(p, PathSegment(s))
}

// Param appends a dynamic path parameter to the path. The parameter
// value can be read back at request time with [Request.PathValue].
func (p Path) Param(name string) Path {
	return append(p, pathParam(name))
}

// Slash marks the path as ending with a trailing slash.
//
// Resource urls all end with a trailing slash so that relative control
// hrefs resolve predictably against them.
func (p Path) Slash() Path {
	return append(p, trailingSlash{})
}

// String converts the path to its string representation. Static
// segments are joined with slashes and parameters are formatted
// as {name}.
func (p Path) String() string {
	ss := make([]string, 0, len(p))
	slash := false
	for _, el := range p {
		if _, ok := el.(trailingSlash); ok {
			slash = true
			continue
		}
		ss = append(ss, el.pathElement())
	}

	s := path.Join(ss...)
	if slash {
		s += "/"
	}
	return s
}
