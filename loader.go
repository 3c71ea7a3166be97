package docc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/swiftlang/swift-docc-sub006/internal/diagnostics"
	"github.com/swiftlang/swift-docc-sub006/internal/extendedtypes"
	"github.com/swiftlang/swift-docc-sub006/internal/platform"
	"github.com/swiftlang/swift-docc-sub006/internal/symbolgraph"
	"github.com/swiftlang/swift-docc-sub006/internal/unifiedgraph"
)

// GraphKind classifies a symbol graph file by its filename shape.
type GraphKind int

const (
	GraphKindMain GraphKind = iota
	GraphKindExtension
	GraphKindCrossImportOverlay
)

// String returns the kind's display name.
func (k GraphKind) String() string {
	switch k {
	case GraphKindMain:
		return "main"
	case GraphKindExtension:
		return "extension"
	default:
		return "cross-import overlay"
	}
}

// ErrMixedGraphFormats is returned when one bundle contains extension graphs
// in the legacy extension-block format alongside graphs already in the
// extended-type format. The two formats assign symbols to different modules,
// so a bundle must commit to one.
var ErrMixedGraphFormats = errors.New("bundle mixes extension-block-format and extended-type-format symbol graphs")

// ModuleNameFor derives the module a symbol graph file belongs to from its
// filename:
//
//	Module.symbols.json        main graph for Module
//	Module@Other.symbols.json  extension graph; belongs to the extended module Other
//	A@B@_A_B.symbols.json      cross-import overlay; belongs to A, with B as bystander
//
// ok is false for filenames without the .symbols.json suffix.
func ModuleNameFor(filename string) (moduleName string, isMain bool, ok bool) {
	base := path.Base(filepath.ToSlash(filename))
	stem, found := strings.CutSuffix(base, ".symbols.json")
	if !found || stem == "" {
		return "", false, false
	}
	parts := strings.Split(stem, "@")
	switch len(parts) {
	case 1:
		return parts[0], true, true
	case 2:
		return parts[1], false, true
	default:
		return parts[0], false, true
	}
}

// extendingModuleFor returns the extending module of an extension graph
// filename (the component before the first "@"), or "" for main graphs.
func extendingModuleFor(filename string) string {
	base := path.Base(filepath.ToSlash(filename))
	stem, found := strings.CutSuffix(base, ".symbols.json")
	if !found || !strings.Contains(stem, "@") {
		return ""
	}
	return strings.SplitN(stem, "@", 2)[0]
}

// DataProvider maps a symbol graph file location to its raw bytes. Read
// failures propagate as decode errors and abort the load.
type DataProvider func(path string) ([]byte, error)

// BundleInfo is the documentation bundle metadata the loader consumes.
type BundleInfo struct {
	// DefaultAvailability declares, per module, the platforms the module
	// supports by default and optionally the version it was introduced in.
	DefaultAvailability map[string][]platform.DefaultAvailability

	// InheritDefaultAvailabilityVersions controls whether synthesized
	// default availability carries the declared introduced version or
	// names the platform alone.
	InheritDefaultAvailabilityVersions bool
}

// GraphLoader discovers, decodes, transforms, and merges the symbol graph
// files of a documentation bundle into one unified graph per module.
type GraphLoader struct {
	provider  DataProvider
	bundle    BundleInfo
	platforms *platform.Config
	diags     diagnostics.Sink
	workers   int

	graphs map[string]*unifiedgraph.UnifiedGraph
	kinds  map[string][]GraphKind
}

// LoaderOption configures a GraphLoader.
type LoaderOption func(*GraphLoader)

// WithBundleInfo supplies the bundle's default-availability table.
func WithBundleInfo(info BundleInfo) LoaderOption {
	return func(l *GraphLoader) { l.bundle = info }
}

// WithPlatformConfig overrides the platform fallback configuration.
func WithPlatformConfig(cfg *platform.Config) LoaderOption {
	return func(l *GraphLoader) { l.platforms = cfg }
}

// WithDiagnostics routes loader diagnostics to the given sink.
func WithDiagnostics(sink diagnostics.Sink) LoaderOption {
	return func(l *GraphLoader) { l.diags = sink }
}

// WithDecodeWorkers sets the worker count for partitioned decoding of a
// single large graph. Defaults to runtime.NumCPU().
func WithDecodeWorkers(n int) LoaderOption {
	return func(l *GraphLoader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// NewGraphLoader returns a loader reading file contents through provider.
func NewGraphLoader(provider DataProvider, opts ...LoaderOption) *GraphLoader {
	l := &GraphLoader{
		provider:  provider,
		platforms: platform.DefaultConfig(),
		diags:     &diagnostics.Engine{},
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// UnifiedGraphs returns the per-module unified graphs built by LoadAll.
func (l *GraphLoader) UnifiedGraphs() map[string]*unifiedgraph.UnifiedGraph {
	return l.graphs
}

// FileAssociations returns, per loaded file location, the graph kinds it
// contributed.
func (l *GraphLoader) FileAssociations() map[string][]GraphKind {
	return l.kinds
}

// loadedGraph is one decoded file awaiting merge.
type loadedGraph struct {
	path            string
	moduleName      string
	extendingModule string
	kind            GraphKind
	graph           *symbolgraph.SymbolGraph
	usedBlockFormat bool
}

// LoadAll decodes every given symbol graph file, applies the extended-type
// transformation where the legacy format calls for it, merges everything
// into one unified graph per module, and runs the availability fill passes.
//
// Decoding strategy: a bundle with more than one main graph (the common
// many-small-per-platform shape) decodes whole files concurrently; anything
// else (typically one huge graph) decodes files serially but partitions
// each file's symbols across workers.
//
// The first decode or transform error aborts the whole load — a malformed
// symbol graph makes everything downstream meaningless. After decoding, no
// step depends on file processing order: files merge in sorted-path order.
func (l *GraphLoader) LoadAll(ctx context.Context, paths []string) (map[string]*unifiedgraph.UnifiedGraph, error) {
	start := time.Now()

	loads := l.classify(paths)
	if err := l.decodeAll(ctx, loads); err != nil {
		return nil, err
	}
	if err := l.transformAll(loads); err != nil {
		return nil, err
	}

	// Legacy inputs got their extending module's name prepended to every
	// path during transformation, so their symbols belong to the extending
	// module. Untransformed extension graphs keep the legacy association
	// with the module they extend.
	association := unifiedgraph.AssociateExtensionsWithExtendedModule
	for _, ld := range loads {
		if ld.usedBlockFormat {
			association = unifiedgraph.AssociateExtensionsWithExtendingModule
			break
		}
	}

	collector := unifiedgraph.NewCollector(association)
	l.kinds = make(map[string][]GraphKind, len(loads))
	for _, ld := range loads {
		extending := ld.extendingModule
		if !ld.usedBlockFormat {
			extending = ""
		}
		collector.Add(ld.graph, ld.moduleName, extending)
		l.kinds[ld.path] = append(l.kinds[ld.path], ld.kind)
	}

	l.graphs = collector.Graphs()
	for _, moduleName := range sortedKeys(l.graphs) {
		graph := l.graphs[moduleName]
		l.fillDefaultAvailability(graph)
		l.fillFallbackAvailability(graph)
	}

	log.Debug().
		Int("files", len(loads)).
		Int("modules", len(l.graphs)).
		Dur("elapsed", time.Since(start)).
		Msg("loaded symbol graphs")
	return l.graphs, nil
}

// classify parses every filename, dropping files that are not symbol
// graphs, and returns the pending loads in sorted-path order.
func (l *GraphLoader) classify(paths []string) []*loadedGraph {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	loads := make([]*loadedGraph, 0, len(sorted))
	for _, p := range sorted {
		moduleName, isMain, ok := ModuleNameFor(p)
		if !ok {
			log.Warn().Str("path", p).Msg("ignoring file without .symbols.json suffix")
			continue
		}
		extending := extendingModuleFor(p)
		kind := GraphKindMain
		switch {
		case strings.Count(path.Base(p), "@") >= 2:
			kind = GraphKindCrossImportOverlay
		case !isMain:
			kind = GraphKindExtension
		}
		loads = append(loads, &loadedGraph{
			path:            p,
			moduleName:      moduleName,
			extendingModule: extending,
			kind:            kind,
		})
	}
	return loads
}

// decodeAll populates each pending load's graph, choosing the concurrency
// shape by how many main graphs the bundle has.
func (l *GraphLoader) decodeAll(ctx context.Context, loads []*loadedGraph) error {
	mains := 0
	for _, ld := range loads {
		if ld.kind != GraphKindExtension {
			mains++
		}
	}

	if mains > 1 {
		g, ctx := errgroup.WithContext(ctx)
		for _, ld := range loads {
			ld := ld
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return l.decodeOne(ld, 1)
			})
		}
		return g.Wait()
	}

	for _, ld := range loads {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.decodeOne(ld, l.workers); err != nil {
			return err
		}
	}
	return nil
}

// decodeOne reads and decodes a single file, partitioning symbol decoding
// across workers when workers > 1.
func (l *GraphLoader) decodeOne(ld *loadedGraph, workers int) error {
	data, err := l.provider(ld.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", ld.path, err)
	}

	start := time.Now()
	graph, err := symbolgraph.DecodeConcurrently(data, workers)
	if err != nil {
		return fmt.Errorf("decode %s: %w", ld.path, err)
	}
	ld.graph = graph

	log.Debug().
		Str("path", ld.path).
		Int("symbols", len(graph.Symbols)).
		Int("relationships", len(graph.Relationships)).
		Dur("elapsed", time.Since(start)).
		Msg("decoded symbol graph")
	return nil
}

// transformAll probes every extension graph for the legacy extension-block
// format and rewrites legacy graphs into the extended-type format. Mixing
// the two formats within one bundle is a hard validation failure.
func (l *GraphLoader) transformAll(loads []*loadedGraph) error {
	sawBlockFormat := false
	sawExtendedFormat := false

	for _, ld := range loads {
		if ld.kind != GraphKindExtension {
			continue
		}
		if extendedtypes.IsUsingExtensionBlockFormat(ld.graph) {
			applied, err := extendedtypes.Transform(ld.graph, ld.extendingModule)
			if err != nil {
				var pathErr *extendedtypes.InvalidReferencePathError
				if errors.As(err, &pathErr) {
					l.diags.Emit(diagnostics.Diagnostic{
						Identifier: diagnostics.IDInvalidSymbolReferencePath,
						Severity:   diagnostics.SeverityError,
						Summary:    pathErr.Error(),
					})
				}
				return fmt.Errorf("transform %s: %w", ld.path, err)
			}
			ld.usedBlockFormat = applied
			sawBlockFormat = sawBlockFormat || applied
		} else if usesExtendedTypeFormat(ld.graph) {
			sawExtendedFormat = true
		}
	}

	if sawBlockFormat && sawExtendedFormat {
		l.diags.Emit(diagnostics.Diagnostic{
			Identifier: diagnostics.IDMixedGraphFormats,
			Severity:   diagnostics.SeverityError,
			Summary:    "Extension symbol graphs in this bundle disagree on the extension format",
		})
		return ErrMixedGraphFormats
	}
	return nil
}

// usesExtendedTypeFormat reports whether a graph already carries
// extended-type symbols, meaning its emitter pre-applied the
// transformation.
func usesExtendedTypeFormat(g *symbolgraph.SymbolGraph) bool {
	for _, s := range g.Symbols {
		switch s.Kind.Identifier {
		case symbolgraph.KindExtendedStruct, symbolgraph.KindExtendedClass,
			symbolgraph.KindExtendedEnum, symbolgraph.KindExtendedProtocol,
			symbolgraph.KindUnknownExtendedType, symbolgraph.KindExtendedModule:
			return true
		}
	}
	return false
}

// DiscoverSymbolGraphs walks root and returns every file matching the
// symbol graph naming convention, sorted.
func DiscoverSymbolGraphs(root string) ([]string, error) {
	matcher := glob.MustCompile("*.symbols.json")

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && matcher.Match(d.Name()) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover symbol graphs: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
