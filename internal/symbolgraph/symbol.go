package symbolgraph

import "strings"

// Identifier uniquely names a symbol within and across symbol graph files.
// Precise is the mangled, globally unique identifier emitted by the compiler;
// InterfaceLanguage is the source language the symbol was declared in.
type Identifier struct {
	Precise           string `json:"precise"`
	InterfaceLanguage string `json:"interfaceLanguage"`
}

// Kind describes what sort of declaration a symbol is.
//
// Identifier is stored without the interface-language prefix: a graph that
// spells the kind as "swift.struct" decodes to Identifier "struct". The
// normalized identifiers for kinds this package treats specially are the
// Kind* constants below.
type Kind struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"displayName"`
}

// Normalized kind identifiers.
const (
	KindClass    = "class"
	KindStruct   = "struct"
	KindEnum     = "enum"
	KindProtocol = "protocol"
	KindFunc     = "func"
	KindVar      = "var"
	KindModule   = "module"

	// KindExtension marks a legacy extension-block symbol: one synthetic
	// symbol per source-level `extension X {}` block.
	KindExtension = "extension"

	// Extended-type kinds, synthesized when extension blocks are folded
	// into one symbol per logically extended type.
	KindExtendedStruct      = "struct.extension"
	KindExtendedClass       = "class.extension"
	KindExtendedEnum        = "enum.extension"
	KindExtendedProtocol    = "protocol.extension"
	KindUnknownExtendedType = "unknown.extension"
	KindExtendedModule      = "module.extension"
)

// NormalizeKindIdentifier strips the interface-language prefix from a raw
// kind identifier, e.g. "swift.struct" becomes "struct". Identifiers without
// a recognized language prefix are returned unchanged.
func NormalizeKindIdentifier(raw, interfaceLanguage string) string {
	if interfaceLanguage != "" && strings.HasPrefix(raw, interfaceLanguage+".") {
		return raw[len(interfaceLanguage)+1:]
	}
	return raw
}

// AccessLevel is a declaration's visibility, ordered from most restrictive
// to most permissive.
type AccessLevel string

const (
	AccessPrivate     AccessLevel = "private"
	AccessFilePrivate AccessLevel = "fileprivate"
	AccessInternal    AccessLevel = "internal"
	AccessPackage     AccessLevel = "package"
	AccessPublic      AccessLevel = "public"
	AccessOpen        AccessLevel = "open"
)

// accessRank orders access levels for comparison. Unknown levels rank lowest
// so a recognized level always wins a widening merge.
var accessRank = map[AccessLevel]int{
	AccessPrivate:     1,
	AccessFilePrivate: 2,
	AccessInternal:    3,
	AccessPackage:     4,
	AccessPublic:      5,
	AccessOpen:        6,
}

// Compare returns -1, 0, or 1 as a is more restrictive than, equal to, or
// more permissive than b.
func (a AccessLevel) Compare(b AccessLevel) int {
	ra, rb := accessRank[a], accessRank[b]
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// MaxAccessLevel returns the more permissive of the two levels.
func MaxAccessLevel(a, b AccessLevel) AccessLevel {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// Names holds the human-facing spellings of a symbol.
type Names struct {
	Title      string                `json:"title"`
	Navigator  []DeclarationFragment `json:"navigator,omitempty"`
	SubHeading []DeclarationFragment `json:"subHeading,omitempty"`
	Prose      string                `json:"prose,omitempty"`
}

// DeclarationFragment is one token of a rendered declaration.
type DeclarationFragment struct {
	Kind              string `json:"kind"`
	Spelling          string `json:"spelling"`
	PreciseIdentifier string `json:"preciseIdentifier,omitempty"`
}

// Position is a zero-based source location.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// SourceRange is a half-open range in a source file.
type SourceRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DocLine is one line of a documentation comment, optionally carrying its
// original source range so downstream consumers can map diagnostics back.
type DocLine struct {
	Text  string       `json:"text"`
	Range *SourceRange `json:"range,omitempty"`
}

// DocComment is a symbol's documentation comment as a list of lines.
// ModuleName records which module the comment text originated from, when the
// graph says it differs from the declaring module (inherited documentation).
type DocComment struct {
	Lines      []DocLine `json:"lines"`
	ModuleName string    `json:"module,omitempty"`
}

// IsEmpty reports whether the comment has no lines.
func (d *DocComment) IsEmpty() bool {
	return d == nil || len(d.Lines) == 0
}

// LineCount returns the number of lines, tolerating a nil receiver.
func (d *DocComment) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// Text joins the comment's lines with newlines.
func (d *DocComment) Text() string {
	if d == nil {
		return ""
	}
	parts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Symbol is one declaration in a symbol graph: a unique precise identifier,
// a kind, naming and path information, an access level, an optional
// documentation comment, and an open-ended set of keyed mixins.
type Symbol struct {
	Identifier     Identifier
	Kind           Kind
	PathComponents []string
	Names          Names
	DocComment     *DocComment
	AccessLevel    AccessLevel
	IsVirtual      bool
	Mixins         MixinSet
}

// PreciseID is shorthand for the symbol's precise identifier.
func (s *Symbol) PreciseID() string {
	return s.Identifier.Precise
}

// AbsolutePath joins the symbol's path components with "/".
func (s *Symbol) AbsolutePath() string {
	return strings.Join(s.PathComponents, "/")
}

// Clone returns a deep copy of the symbol. Mixins are copied per entry;
// availability lists get their own backing array so fill passes on one copy
// never alias another.
func (s *Symbol) Clone() *Symbol {
	out := *s
	out.PathComponents = append([]string(nil), s.PathComponents...)
	if s.DocComment != nil {
		dc := *s.DocComment
		dc.Lines = append([]DocLine(nil), s.DocComment.Lines...)
		out.DocComment = &dc
	}
	out.Mixins = s.Mixins.Clone()
	return &out
}
