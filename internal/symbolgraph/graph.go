package symbolgraph

// Metadata describes the tool and format version that produced a graph.
type Metadata struct {
	FormatVersion SemanticVersion `json:"formatVersion"`
	Generator     string          `json:"generator,omitempty"`
}

// OperatingSystem is the OS portion of a platform triple.
type OperatingSystem struct {
	Name           string           `json:"name"`
	MinimumVersion *SemanticVersion `json:"minimumVersion,omitempty"`
}

// Platform is the target triple a graph was compiled for. Environment
// distinguishes variants that share an OS, such as Mac Catalyst ("macabi")
// on top of iOS.
type Platform struct {
	Architecture    string           `json:"architecture,omitempty"`
	Vendor          string           `json:"vendor,omitempty"`
	OperatingSystem *OperatingSystem `json:"operatingSystem,omitempty"`
	Environment     string           `json:"environment,omitempty"`
}

// OperatingSystemName returns the raw OS name, or "" for platform-agnostic
// graphs.
func (p Platform) OperatingSystemName() string {
	if p.OperatingSystem == nil {
		return ""
	}
	return p.OperatingSystem.Name
}

// Module describes the module a graph documents. Bystanders lists the
// secondary modules of a cross-import overlay graph.
type Module struct {
	Name       string   `json:"name"`
	Platform   Platform `json:"platform"`
	Bystanders []string `json:"bystanders,omitempty"`
}

// SymbolGraph is one decoded symbol graph file: metadata, the module
// descriptor, symbols keyed by precise identifier, and the relationship
// edges between them. A SymbolGraph is ephemeral; the loader consumes it
// into a unified graph.
type SymbolGraph struct {
	Metadata      Metadata
	Module        Module
	Symbols       map[string]*Symbol
	Relationships []Relationship
}

// NewSymbolGraph returns an empty graph ready for symbols.
func NewSymbolGraph() *SymbolGraph {
	return &SymbolGraph{Symbols: make(map[string]*Symbol)}
}

// AddSymbol inserts or replaces a symbol under its precise identifier.
func (g *SymbolGraph) AddSymbol(s *Symbol) {
	if g.Symbols == nil {
		g.Symbols = make(map[string]*Symbol)
	}
	g.Symbols[s.PreciseID()] = s
}

// SymbolsWithKind returns the precise identifiers of all symbols whose
// normalized kind identifier matches, in unspecified order.
func (g *SymbolGraph) SymbolsWithKind(kindIdentifier string) []string {
	var ids []string
	for id, s := range g.Symbols {
		if s.Kind.Identifier == kindIdentifier {
			ids = append(ids, id)
		}
	}
	return ids
}

// InterfaceLanguage returns the interface language of the graph's symbols,
// or "" for a graph with no symbols. A graph never mixes languages, so any
// symbol's language is the graph's.
func (g *SymbolGraph) InterfaceLanguage() string {
	for _, s := range g.Symbols {
		return s.Identifier.InterfaceLanguage
	}
	return ""
}
