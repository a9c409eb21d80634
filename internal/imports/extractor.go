// Package imports extracts the external import surface of a Python codebase.
//
// Extraction is best-effort: files that cannot be read or contain statements
// the scanner cannot make sense of contribute a warning instead of failing
// the scan.
package imports

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Warning records a non-fatal problem encountered while scanning one path.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// Result carries the identifiers found by a scan together with the warnings
// accumulated along the way.
type Result struct {
	Identifiers  map[string]bool
	Warnings     []Warning
	FilesScanned int
}

// Sorted returns the identifier set as a sorted slice.
func (r *Result) Sorted() []string {
	return sortedKeys(r.Identifiers)
}

func (r *Result) warnf(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// reImport matches a plain `import a.b.c` statement (possibly a comma list).
var reImport = regexp.MustCompile(`^import\s+(.+)$`)

// reFromImport matches `from a.b import c`; the module part may be empty for
// relative imports like `from . import x`.
var reFromImport = regexp.MustCompile(`^from\s+(\.*[\w.]*)\s+import\b`)

// reIdentifier validates a top-level module name.
var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// skipDirs are directory names never descended into. Virtualenvs and build
// output contain thousands of third-party files that are not part of the
// project's own import surface.
var skipDirs = map[string]bool{
	"__pycache__":   true,
	"venv":          true,
	".venv":         true,
	"env":           true,
	"node_modules":  true,
	"build":         true,
	"dist":          true,
	"site-packages": true,
}

// ScanPaths scans every Python file under the given roots and returns the
// union of top-level import identifiers. A root may be a single file
// (scanned as-is) or a directory (searched recursively for *.py files).
// Unresolvable roots and unparsable files are reported as warnings, never as
// errors.
func ScanPaths(roots []string) *Result {
	result := &Result{Identifiers: map[string]bool{}}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			result.warnf(root, "path does not exist")
			continue
		}

		if !info.IsDir() {
			scanFile(root, result)
			continue
		}

		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.ToLower(filepath.Ext(d.Name())) != ".py" {
				return nil
			}
			scanFile(path, result)
			return nil
		})
	}

	return result
}

// scanFile extracts import identifiers from a single Python file into the
// result. The scanner is line-oriented: it tracks triple-quoted strings,
// strips comments, and joins backslash continuations, which is enough to
// recognise every import statement form without a full grammar.
func scanFile(path string, result *Result) {
	f, err := os.Open(path)
	if err != nil {
		result.warnf(path, "could not read file: %v", err)
		return
	}
	defer f.Close()

	result.FilesScanned++

	var (
		tripleDelim string // open triple-quote delimiter, "" when outside
		pending     string // logical line carried over a backslash continuation
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		code := stripStringsAndComments(scanner.Text(), &tripleDelim)
		if pending != "" {
			code = pending + " " + strings.TrimSpace(code)
			pending = ""
		}
		if strings.HasSuffix(code, `\`) {
			pending = strings.TrimSpace(strings.TrimSuffix(code, `\`))
			continue
		}

		// Compound statements share a physical line via semicolons.
		for _, stmt := range strings.Split(code, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			extractStatement(stmt, path, lineNo, result)
		}
	}
	if err := scanner.Err(); err != nil {
		result.warnf(path, "could not parse file: %v", err)
	}
}

// extractStatement records the top-level module of an import statement, if
// stmt is one. Anything else is ignored.
func extractStatement(stmt, path string, lineNo int, result *Result) {
	if m := reFromImport.FindStringSubmatch(stmt); m != nil {
		module := strings.TrimLeft(m[1], ".")
		if module == "" {
			// Relative import with no module name contributes nothing.
			return
		}
		addIdentifier(module, path, lineNo, result)
		return
	}

	if m := reImport.FindStringSubmatch(stmt); m != nil {
		for _, item := range strings.Split(m[1], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			// `import x as y` still contributes x, never the alias.
			if i := strings.Index(item, " as "); i >= 0 {
				item = strings.TrimSpace(item[:i])
			}
			addIdentifier(item, path, lineNo, result)
		}
	}
}

// addIdentifier records the first dotted segment of a module path.
func addIdentifier(module, path string, lineNo int, result *Result) {
	top := module
	if i := strings.IndexByte(top, '.'); i >= 0 {
		top = top[:i]
	}
	if !reIdentifier.MatchString(top) {
		result.warnf(path, "line %d: malformed import %q", lineNo, module)
		return
	}
	result.Identifiers[top] = true
}

// stripStringsAndComments returns the code portion of a physical line:
// triple-quoted string content is removed (delimiter state persists across
// lines via tripleDelim), then everything from an unquoted # onward is cut.
func stripStringsAndComments(line string, tripleDelim *string) string {
	var code strings.Builder
	rest := line

	for {
		if *tripleDelim != "" {
			i := strings.Index(rest, *tripleDelim)
			if i < 0 {
				// Still inside the string on the next line.
				return strings.TrimSpace(code.String())
			}
			rest = rest[i+len(*tripleDelim):]
			*tripleDelim = ""
			continue
		}

		iSingle := strings.Index(rest, "'''")
		iDouble := strings.Index(rest, `"""`)
		i, delim := iSingle, "'''"
		if iSingle < 0 || (iDouble >= 0 && iDouble < iSingle) {
			i, delim = iDouble, `"""`
		}
		if i < 0 {
			code.WriteString(rest)
			break
		}
		code.WriteString(rest[:i])
		*tripleDelim = delim
		rest = rest[i+len(delim):]
	}

	return strings.TrimSpace(cutComment(code.String()))
}

// cutComment removes a trailing # comment, ignoring # inside single- or
// double-quoted strings.
func cutComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
