package params

import "strings"

// SourceKind enumerates the supported parameter origins.
type SourceKind int

const (
	// SourceKindFile loads parameters from a path on the local filesystem.
	SourceKindFile SourceKind = iota + 1
	// SourceKindFS loads parameters from the loader's configured fs.FS.
	SourceKindFS
	// SourceKindLiteral treats the location itself as inline key=value data.
	SourceKindLiteral
)

// Source identifies where customisation data lives. Construct instances with
// the SourceFrom* helpers.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }

func (s source) Location() string { return s.location }

// SourceFromFile points at a parameter document on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: strings.TrimSpace(path)}
}

// SourceFromFS points at a parameter document inside the loader's fs.FS,
// typically an embedded or test filesystem.
func SourceFromFS(path string) Source {
	return source{kind: SourceKindFS, location: strings.TrimSpace(path)}
}

// SourceFromLiteral carries inline parameters: comma-separated key=value
// pairs, or a bare value that is bound to the "environment" key to match the
// historical single-argument CLI shape.
func SourceFromLiteral(raw string) Source {
	return source{kind: SourceKindLiteral, location: strings.TrimSpace(raw)}
}
