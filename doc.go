// Package docc loads, normalizes, and unifies compiler-emitted symbol
// graphs into one cross-referenced graph per module, ready for
// documentation generation.
//
// # Pipeline
//
// Loading runs in four phases:
//
//  1. Decode: each symbol graph JSON file decodes through a streaming
//     decoder. Bundles with many per-platform graphs decode whole files
//     concurrently; a bundle with one large graph partitions that file's
//     symbols array across stride workers instead.
//
//  2. Transform: extension graphs still using the legacy extension-block
//     format (one synthetic symbol per `extension X {}` block) are
//     rewritten into the extended-type format — one symbol per logically
//     extended type, with synthesized ancestors and module-declaration
//     edges.
//
//  3. Merge: all graphs describing one module fold into a
//     [UnifiedGraph], partitioning per-symbol data by selector (interface
//     language and platform) and deduplicating relationships.
//
//  4. Availability fill: symbols gain synthesized availability for
//     platforms the bundle declares defaults for, and fallback platforms
//     (Mac Catalyst, iPadOS) inherit whole availability records from the
//     platform they run on when no graph covered them directly.
//
// # Usage
//
// Create a [GraphLoader] with a data provider and load a bundle's files:
//
//	loader := docc.NewGraphLoader(os.ReadFile)
//	graphs, err := loader.LoadAll(ctx, paths)
//	if err != nil { ... }
//
// The result maps module names to unified graphs. The relationship builder
// in internal/linkbuilder consumes those graphs together with a
// documentation-node cache to wire up the topic graph, emitting warning
// diagnostics for dangling references instead of failing the build.
//
// # Errors and diagnostics
//
// A malformed file, a failed transformation, or a bundle mixing extension
// formats aborts the whole load with the first observed error. Dangling
// relationships and other recoverable conditions surface as structured
// diagnostics alongside a successfully built, partially connected graph.
package docc
