package reader

import (
	"fmt"
	"strings"
)

// MalformedFileError reports a delimited file whose header is missing
// columns the issuer format requires. The whole file is skipped.
type MalformedFileError struct {
	Path    string
	Missing []string
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("malformed file %s: missing columns %s", e.Path, strings.Join(e.Missing, ", "))
}

// UnrecognizedLayoutError reports a statement document in which no
// transaction table could be located.
type UnrecognizedLayoutError struct {
	Path string
}

func (e *UnrecognizedLayoutError) Error() string {
	return fmt.Sprintf("unrecognized statement layout in %s: no transaction region found", e.Path)
}

// PartialExtractionError reports a statement in which some candidate
// transaction lines could not be parsed. It is non-fatal: the rows that
// did parse are still returned alongside it.
type PartialExtractionError struct {
	Path     string
	BadLines []string
}

func (e *PartialExtractionError) Error() string {
	return fmt.Sprintf("partial extraction from %s: %d unparsable lines", e.Path, len(e.BadLines))
}
