// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package clip

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/purpleidea/clipscript/pgraph"
	"github.com/purpleidea/clipscript/util/errwrap"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWorkers is the number of concurrent pulls when unspecified.
	DefaultWorkers = 4
)

// Observer receives a notification for every control message that the runtime
// sends. It is used to feed metrics without this package depending on them.
type Observer interface {
	ObserveCacheMessage(key CacheKey, handled bool)
}

// Runtime builds the processing graph. It decides where caches and thread
// guards go by asking the existing nodes first, so that redundant wrappers are
// never stacked on top of each other.
type Runtime struct {
	// Name is the name of the graph.
	Name string

	// CacheSize is the minimum number of frames each new cache holds.
	CacheSize int

	// Observer, if set, is told about every message sent.
	Observer Observer

	Debug bool
	Logf  func(format string, v ...interface{})

	mutex  *sync.Mutex
	graph  *pgraph.Graph
	guards []*Guard
}

// Init must be called before the runtime is used.
func (obj *Runtime) Init() error {
	if obj.Name == "" {
		obj.Name = "clips"
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {} // silent
	}
	graph, err := pgraph.NewGraph(obj.Name)
	if err != nil {
		return errwrap.Wrapf(err, "could not build the graph")
	}
	obj.graph = graph
	obj.mutex = &sync.Mutex{}
	return nil
}

// Send delivers a control message to the target clip. A nil reply is replaced
// by the default reply, so the caller can always look at the result.
func (obj *Runtime) Send(target Clip, msg *CacheMessage) *CacheReply {
	reply := target.SendMessage(msg)
	if reply == nil {
		reply = DefaultCacheReply()
	}
	if obj.Debug {
		obj.Logf("send %s %s to %s: handled=%t coverage=%s", msg.Key, msg.Range, target, reply.Handled, reply.Coverage)
	}
	if obj.Observer != nil {
		obj.Observer.ObserveCacheMessage(msg.Key, reply.Handled)
	}
	return reply
}

// Add puts a clip in the graph. Adding a clip twice is harmless.
func (obj *Runtime) Add(c Clip) {
	obj.graph.AddVertex(c)
}

// Connect records that consumer pulls its frames from producer.
func (obj *Runtime) Connect(producer, consumer Clip) {
	obj.graph.AddEdge(producer, consumer, &pgraph.SimpleEdge{
		Name: fmt.Sprintf("%s -> %s", producer, consumer),
	})
}

// Filter adds a filter to the graph along with the edge from its child.
func (obj *Runtime) Filter(f Filter) {
	obj.Add(f.Child())
	obj.Add(f)
	obj.Connect(f.Child(), f)
}

// Request asks the producer whether it already caches the range r, and to grow
// its cache to include it if it can. If the reply isn't Handled, the consumer
// should pull from the producer directly. Nothing is added to the graph.
func (obj *Runtime) Request(producer Clip, r Range) *CacheReply {
	if r.Empty() {
		r = Range{Start: 0, Count: producer.Info().NumFrames}
	}
	return obj.Send(producer, &CacheMessage{Key: CacheRequestFrameAndExpand, Range: r})
}

// Cached opts the range r of child into the caching layer, and returns the clip
// that serves it. If the child already caches the range, or can grow its cache
// to include it, then the child itself is returned. If a cache in the graph
// already consumes the child, it is grown and returned. Otherwise a new cache
// is put in front of it. An empty range means every frame.
func (obj *Runtime) Cached(child Clip, r Range) (Clip, error) {
	obj.Add(child)
	if r.Empty() {
		r = Range{Start: 0, Count: child.Info().NumFrames}
	}
	if reply := obj.Request(child, r); reply.Handled {
		obj.Logf("reusing the cache of %s for %s", child, r)
		return child, nil
	}
	if reply := obj.Send(child, &CacheMessage{Key: CacheRegister, Range: r}); reply.Handled {
		obj.Logf("%s registered %s itself", child, r)
		return child, nil
	}
	for _, c := range obj.Consumers(child) {
		cache, ok := c.(*Cache)
		if !ok || cache.Child() != child {
			continue
		}
		if reply := obj.Send(cache, &CacheMessage{Key: CacheRegister, Range: r}); reply.Handled {
			obj.Logf("reusing %s in front of %s for %s", cache, child, r)
			return cache, nil
		}
	}

	cache, err := NewCache(child, obj.CacheSize)
	if err != nil {
		return nil, err
	}
	if reply := obj.Send(cache, &CacheMessage{Key: CacheRegister, Range: r}); !reply.Handled {
		// programming error
		return nil, fmt.Errorf("new cache refused to register %s", r)
	}
	obj.Filter(cache)
	obj.Logf("added %s in front of %s for %s", cache, child, r)
	return cache, nil
}

// Guarded returns a clip which serializes all calls into the child. If the
// child is already guarded, it is returned as is.
func (obj *Runtime) Guarded(child Clip) (Clip, error) {
	obj.Add(child)
	if reply := obj.Send(child, &CacheMessage{Key: CacheRegisterGuard}); reply.Handled {
		obj.Logf("reusing the guard of %s", child)
		return child, nil
	}

	guard, err := NewGuard(child)
	if err != nil {
		return nil, err
	}
	if reply := obj.Send(guard, &CacheMessage{Key: CacheRegisterGuard}); !reply.Handled {
		// programming error
		return nil, fmt.Errorf("new guard refused to register")
	}
	obj.Filter(guard)

	obj.mutex.Lock()
	obj.guards = append(obj.guards, guard)
	obj.mutex.Unlock()

	obj.Logf("added %s in front of %s", guard, child)
	return guard, nil
}

// Order returns the clips of the graph with every producer ahead of its
// consumers.
func (obj *Runtime) Order() ([]Clip, error) {
	vertices, err := obj.graph.TopologicalSort()
	if err != nil {
		return nil, errwrap.Wrapf(err, "the processing graph is not a dag")
	}
	clips := []Clip{}
	for _, v := range vertices {
		c, ok := v.(Clip)
		if !ok {
			return nil, fmt.Errorf("vertex %s is not a clip", v)
		}
		clips = append(clips, c)
	}
	return clips, nil
}

// Graph returns a copy of the processing graph. The clips themselves are
// shared, only the structure is copied.
func (obj *Runtime) Graph() *pgraph.Graph {
	return obj.graph.Copy()
}

// Producers returns the clips that c pulls its frames from.
func (obj *Runtime) Producers(c Clip) []Clip {
	return toClips(obj.graph.IncomingGraphVertices(c))
}

// Consumers returns the clips that pull their frames from c.
func (obj *Runtime) Consumers(c Clip) []Clip {
	return toClips(obj.graph.OutgoingGraphVertices(c))
}

// Sinks returns the clips that nothing else consumes, sorted by name. These are
// the outputs of the graph.
func (obj *Runtime) Sinks() []Clip {
	vertices := []pgraph.Vertex{}
	for v, d := range obj.graph.OutDegree() {
		if d == 0 {
			vertices = append(vertices, v)
		}
	}
	return toClips(vertices)
}

// toClips converts vertices back to clips, sorted by name. Only clips are ever
// added to the graph.
func toClips(vertices []pgraph.Vertex) []Clip {
	clips := []Clip{}
	for _, v := range vertices {
		if c, ok := v.(Clip); ok {
			clips = append(clips, c)
		}
	}
	sort.Slice(clips, func(i, j int) bool { return clips[i].String() < clips[j].String() })
	return clips
}

// Graphviz returns the processing graph in the graphviz dot format.
func (obj *Runtime) Graphviz() string {
	return obj.graph.Graphviz()
}

// Pull fetches the listed frames from the clip with at most workers concurrent
// calls. The frames are returned in the order they were asked for. The first
// error cancels the remaining pulls.
func (obj *Runtime) Pull(ctx context.Context, c Clip, frames []int, workers int) ([]*Frame, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	result := make([]*Frame, len(frames))

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(workers)
	for i, n := range frames {
		i, n := i, n
		wg.Go(func() error {
			frame, err := c.GetFrame(ctx, n)
			if err != nil {
				return errwrap.Wrapf(err, "could not pull frame %d from %s", n, c)
			}
			result[i] = frame // each index is written once
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Close unregisters and shuts down every guard that this runtime added.
func (obj *Runtime) Close() error {
	obj.mutex.Lock()
	guards := obj.guards
	obj.guards = nil
	obj.mutex.Unlock()

	var reterr error
	for _, guard := range guards {
		obj.Send(guard, &CacheMessage{Key: CacheUnregisterGuard})
		reterr = errwrap.Append(reterr, guard.Close())
	}
	return reterr
}
