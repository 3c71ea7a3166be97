package symbolgraph

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// DecodeConcurrently decodes one symbol graph document using a pool of
// stride-partitioned workers and returns a graph equivalent to Decode's.
//
// One eager task decodes metadata, module, and relationships — cheap and not
// worth partitioning. The symbols array, which dominates file size, is split
// across `workers` goroutines: worker i runs a full streaming pass over the
// document but only allocates and decodes elements at indexes where
// index % workers == i, skipping the rest. Partitioning by stride avoids
// pre-scanning the document for byte-range split points.
//
// Each worker accumulates an owned partial map; a single-threaded reducer
// merges them after all workers drain. Duplicate precise identifiers across
// partitions resolve through preferredSymbol, so the merged result does not
// depend on scheduling order. If any task fails, the first observed error is
// returned after every task has finished; partial results are discarded.
func DecodeConcurrently(data []byte, workers int) (*SymbolGraph, error) {
	if workers <= 1 {
		return Decode(data)
	}

	graph := NewSymbolGraph()
	partials := make([]map[string]indexedSymbol, workers)

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	observe := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	// Eager task: everything except the symbols array.
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := walkGraph(data, graph, nil); err != nil {
			observe(err)
		}
	}()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			partial, err := decodeSymbolPartition(data, worker, workers)
			if err != nil {
				observe(err)
				return
			}
			partials[worker] = partial
		}(i)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	merged := make(map[string]indexedSymbol)
	for _, partial := range partials {
		for _, cand := range partial {
			insertSymbol(merged, cand)
		}
	}
	for id, is := range merged {
		graph.Symbols[id] = is.sym
	}
	return graph, nil
}

// decodeSymbolPartition decodes every symbols-array element whose index is
// congruent to worker modulo stride, returning an owned partial map.
func decodeSymbolPartition(data []byte, worker, stride int) (map[string]indexedSymbol, error) {
	partial := make(map[string]indexedSymbol)

	err := walkGraph(data, nil, func(index int, iter *jsoniter.Iterator) error {
		if index%stride != worker {
			iter.Skip()
			return nil
		}
		sym, err := decodeSymbol(iter)
		if err != nil {
			return err
		}
		insertSymbol(partial, indexedSymbol{sym: sym, index: index})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return partial, nil
}
