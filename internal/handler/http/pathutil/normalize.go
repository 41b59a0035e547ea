// Package pathutil parses record ids out of request paths and maps concrete
// paths back to their route for metric and span labels.
package pathutil

import "strings"

// idRoutes are the path prefixes whose final segment is a record id.
var idRoutes = map[string]struct{}{
	"/selection":      {},
	"/selection/rows": {},
}

// NormalizePath replaces the record id of an id-bearing route with ":id" so
// every row shares one label. A query string and a trailing slash are dropped;
// any other path is returned unchanged.
//
//	NormalizePath("/selection/rows/123")  // "/selection/rows/:id"
//	NormalizePath("/selection/456/")      // "/selection/:id"
//	NormalizePath("/records?page=2")      // "/records"
//	NormalizePath("/selection/visible")   // "/selection/visible"
func NormalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return path
	}
	if _, ok := idRoutes[path[:i]]; ok && isDigits(path[i+1:]) {
		return path[:i] + "/:id"
	}
	return path
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
