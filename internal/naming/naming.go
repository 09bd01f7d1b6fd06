package naming

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HashLen is the number of encoded characters kept from the path digest.
const HashLen = 8

// Pattern matches every identifier produced by Identifier. The basename
// segment may be empty and may itself contain dashes.
var Pattern = regexp.MustCompile(`^(.*)-([A-Za-z0-9_-]{8})-py(\d+\.\d+)$`)

var (
	lower      = cases.Lower(language.Und)
	separators = "/" + string(filepath.Separator)
)

// Hash returns the first HashLen characters of the URL-safe base64 encoding
// of sha256(path). The full digest is encoded before truncation.
func Hash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return base64.URLEncoding.EncodeToString(sum[:])[:HashLen]
}

// Identifier returns "<basename>-<hash>-py<version>" for projectPath.
// pythonVersion is the major.minor tag, e.g. "3.11".
func Identifier(projectPath, pythonVersion string) string {
	return fmt.Sprintf("%s-%s-py%s", lower.String(Basename(projectPath)), Hash(projectPath), pythonVersion)
}

// Basename returns everything after the last path separator. Unlike
// filepath.Base it does not strip trailing separators, so "/" yields "".
func Basename(path string) string {
	return path[strings.LastIndexAny(path, separators)+1:]
}

// Parts is an identifier split into its segments.
type Parts struct {
	Name          string
	Hash          string
	PythonVersion string
}

// Parse splits an identifier produced by Identifier.
func Parse(identifier string) (Parts, error) {
	m := Pattern.FindStringSubmatch(identifier)
	if m == nil {
		return Parts{}, fmt.Errorf("%q is not an environment identifier", identifier)
	}
	return Parts{Name: m[1], Hash: m[2], PythonVersion: m[3]}, nil
}
