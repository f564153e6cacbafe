// Package stream turns the engine's per-node update callback into a
// typed channel of state snapshots, mirroring value-mode streaming:
// one update per executed node, in execution order.
package stream

// Update is one state snapshot emitted after a node ran.
type Update[S any] struct {
	NodeID string
	State  S
}

// Collector buffers updates from a running graph. Create one per run,
// pass Push to stategraph.WithUpdateFunc, run the graph on its own
// goroutine, and range over Updates; call Close when Run returns.
//
//	col := stream.NewCollector[ChatState](16)
//	go func() {
//	    defer col.Close()
//	    result, err = compiled.Run(ctx, state, stategraph.WithUpdateFunc(col.Push))
//	}()
//	for u := range col.Updates() {
//	    render(u.State)
//	}
type Collector[S any] struct {
	ch chan Update[S]
}

// NewCollector creates a collector with the given channel buffer.
func NewCollector[S any](buffer int) *Collector[S] {
	if buffer < 0 {
		buffer = 0
	}
	return &Collector[S]{
		ch: make(chan Update[S], buffer),
	}
}

// Push records one update. The state must be of type S; snapshots of
// any other type are dropped. Push blocks when the buffer is full, so
// the consumer side controls the executor's pace.
func (c *Collector[S]) Push(nodeID string, state any) {
	typed, ok := state.(S)
	if !ok {
		return
	}
	c.ch <- Update[S]{NodeID: nodeID, State: typed}
}

// Updates returns the channel of snapshots. It is closed by Close.
func (c *Collector[S]) Updates() <-chan Update[S] {
	return c.ch
}

// Close marks the run finished. Call exactly once, after Run returns.
func (c *Collector[S]) Close() {
	close(c.ch)
}
