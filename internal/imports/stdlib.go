package imports

// stdlibModules is the built-in allow-list of common standard-library module
// names. It is hand-maintained and deliberately not exhaustive: an unknown
// stdlib module leaks through the filter and later surfaces as "not in
// reference", which is visible, rather than being silently dropped.
var stdlibModules = map[string]bool{
	"__future__":      true,
	"abc":             true,
	"argparse":        true,
	"ast":             true,
	"asyncio":         true,
	"base64":          true,
	"collections":     true,
	"contextlib":      true,
	"copy":            true,
	"csv":             true,
	"dataclasses":     true,
	"datetime":        true,
	"decimal":         true,
	"enum":            true,
	"functools":       true,
	"glob":            true,
	"hashlib":         true,
	"html":            true,
	"io":              true,
	"itertools":       true,
	"json":            true,
	"logging":         true,
	"math":            true,
	"multiprocessing": true,
	"os":              true,
	"pathlib":         true,
	"pickle":          true,
	"re":              true,
	"signal":          true,
	"statistics":      true,
	"string":          true,
	"subprocess":      true,
	"sys":             true,
	"tempfile":        true,
	"threading":       true,
	"time":            true,
	"typing":          true,
	"unittest":        true,
	"urllib":          true,
	"warnings":        true,
	"weakref":         true,
	"xml":             true,
}

// IsStdlib reports whether the identifier is on the built-in allow-list.
func IsStdlib(identifier string) bool {
	return stdlibModules[identifier]
}

// Filter removes standard-library and local identifiers, keeping only the
// external import surface. extraStdlib extends the built-in allow-list for
// codebases that hit its gaps.
func Filter(identifiers map[string]bool, local map[string]bool, extraStdlib []string) map[string]bool {
	extra := make(map[string]bool, len(extraStdlib))
	for _, name := range extraStdlib {
		extra[name] = true
	}

	external := map[string]bool{}
	for id := range identifiers {
		if stdlibModules[id] || extra[id] || local[id] {
			continue
		}
		external[id] = true
	}
	return external
}
