/*
Copyright 2024 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package output

import (
	"reflect"

	"golang.org/x/sync/errgroup"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	"github.com/crossplane/xoutput/pkg/output/resourceid"
)

// Error strings.
const errCircular = "circular structure"

// ErrCircularStructure is returned, or used to reject an Output's fields,
// when Lift finds the same composite value on its own ancestor path —
// either directly, or indirectly through a Pending handle that resolves
// back to one of its ancestors.
var ErrCircularStructure = errors.New(errCircular)

// Pending is an input capable of yielding a value at some future point —
// a function wrapping a channel read, an RPC response, or any other
// eventually-resolved handle. Lift awaits it by invoking it, which may
// block the calling goroutine.
type Pending func() (any, error)

// Lift converts an arbitrary input into an Output. An *Output is returned
// unchanged; any other OutputLike is rewrapped, preserving its five
// fields. Pending handles are awaited and the result is lifted again.
// Composite inputs ([]any, map[string]any) are walked element-wise; their
// metadata is the join of their children's metadata (§4.3).
//
// A synchronous, identity-based cycle check runs over the non-pending
// portion of x before Lift returns anything, so a direct cycle (a map
// that contains itself) fails immediately. A cycle that only appears once
// a Pending handle resolves back to one of its own ancestors is instead
// caught during resolution and surfaced lazily through the returned
// Output's fields.
func Lift(x any) (*Output, error) {
	if ol, ok := x.(OutputLike); ok {
		return wrapOutputLike(ol), nil
	}

	if err := checkCycleSync(x, map[uintptr]struct{}{}); err != nil {
		return nil, err
	}

	o := newPending()
	go o.resolveFrom(x)
	return o, nil
}

func wrapOutputLike(ol OutputLike) *Output {
	if o, ok := ol.(*Output); ok {
		return o
	}

	o := newPending()
	go func() {
		v, err := ol.Value()
		if err != nil {
			o.value.Reject(err)
		} else {
			o.value.Resolve(v)
		}
	}()
	go func() {
		k, err := ol.IsKnown()
		if err != nil {
			o.known.Reject(err)
		} else {
			o.known.Resolve(k)
		}
	}()
	go func() {
		s, err := ol.IsSecret()
		if err != nil {
			o.secret.Reject(err)
		} else {
			o.secret.Resolve(s)
		}
	}()
	go func() {
		d, err := ol.Deps()
		if err != nil {
			o.deps.Reject(err)
		} else {
			o.deps.Resolve(d)
		}
	}()
	go func() {
		a, err := ol.AllDeps()
		if err != nil {
			o.allDeps.Reject(err)
		} else {
			o.allDeps.Resolve(a)
		}
	}()
	return o
}

// meta is the metadata half of a resolved value: everything except the
// value itself.
type meta struct {
	deps    resourceid.Set
	allDeps resourceid.Set
	known   bool
	secret  bool
}

func joinMeta(ms []meta) meta {
	out := meta{deps: resourceid.Set{}, allDeps: resourceid.Set{}, known: true, secret: false}
	for _, m := range ms {
		out.deps = out.deps.Union(m.deps)
		out.allDeps = out.allDeps.Union(m.allDeps)
		out.known = out.known && m.known
		out.secret = out.secret || m.secret
	}
	return out
}

// resolve awaits pending sub-structures and Outputs inside x, returning the
// fully materialized value alongside the join of every descendant's
// metadata. path tracks the identity of every slice/map currently being
// walked — including across a Pending indirection — so that a true
// back-reference to an ancestor is a CircularStructure error while the
// same object appearing twice as siblings is accepted. path is never
// mutated in place: descending into a container produces a new map via
// pathPush, so concurrent siblings only read their parent's map and never
// race on it, while still seeing none of each other's path entries — which
// is exactly why a shared sibling reference is accepted but a real
// ancestor back-reference is not.
func resolve(x any, path map[uintptr]struct{}) (any, meta, error) {
	switch v := x.(type) {
	case *Output:
		return resolveOutput(v)
	case OutputLike:
		return resolveOutput(wrapOutputLike(v))
	case Pending:
		yielded, err := v()
		if err != nil {
			return nil, meta{}, err
		}
		return resolve(yielded, path)
	case []any:
		return resolveSlice(v, path)
	case map[string]any:
		return resolveMap(v, path)
	default:
		return v, meta{known: v != UNKNOWN}, nil
	}
}

func resolveOutput(o *Output) (any, meta, error) {
	val, err := o.Value()
	if err != nil {
		return nil, meta{}, err
	}
	known, err := o.IsKnown()
	if err != nil {
		return nil, meta{}, err
	}
	secret, err := o.IsSecret()
	if err != nil {
		return nil, meta{}, err
	}
	deps, err := o.Deps()
	if err != nil {
		return nil, meta{}, err
	}
	allDeps, err := o.AllDeps()
	if err != nil {
		return nil, meta{}, err
	}
	return val, meta{deps: deps, allDeps: allDeps.Union(deps), known: known, secret: secret}, nil
}

// resolveSlice resolves every element of in concurrently — an errgroup
// fans each element's resolve call out onto its own goroutine and collects
// the first error, matching the join combinators' requirement to await
// every input in parallel rather than one at a time.
func resolveSlice(in []any, path map[uintptr]struct{}) (any, meta, error) {
	next, err := pathPush(path, reflect.ValueOf(in))
	if err != nil {
		return nil, meta{}, err
	}

	vals := make([]any, len(in))
	metas := make([]meta, len(in))
	var g errgroup.Group
	for i, e := range in {
		i, e := i, e
		g.Go(func() error {
			v, m, err := resolve(e, next)
			if err != nil {
				return err
			}
			vals[i] = v
			metas[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, meta{}, err
	}
	return vals, joinMeta(metas), nil
}

// resolveMap is resolveSlice's record-shaped counterpart.
func resolveMap(in map[string]any, path map[uintptr]struct{}) (any, meta, error) {
	next, err := pathPush(path, reflect.ValueOf(in))
	if err != nil {
		return nil, meta{}, err
	}

	type field struct {
		key string
		val any
		m   meta
	}
	fields := make([]field, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}

	var g errgroup.Group
	for i, k := range keys {
		i, k := i, k
		g.Go(func() error {
			v, m, err := resolve(in[k], next)
			if err != nil {
				return err
			}
			fields[i] = field{key: k, val: v, m: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, meta{}, err
	}

	out := make(map[string]any, len(fields))
	metas := make([]meta, len(fields))
	for i, f := range fields {
		out[f.key] = f.val
		metas[i] = f.m
	}
	return out, joinMeta(metas), nil
}

// pathPush returns a new path with rv added to it, without mutating path
// itself — every descent into a container allocates its own copy, so
// concurrent siblings can each extend their own view of the ancestor
// chain without racing on a shared map. It reports ErrCircularStructure if
// rv is already on path.
func pathPush(path map[uintptr]struct{}, rv reflect.Value) (map[uintptr]struct{}, error) {
	if rv.IsNil() {
		return path, nil
	}
	id := rv.Pointer()
	if _, onPath := path[id]; onPath {
		return nil, ErrCircularStructure
	}
	next := make(map[uintptr]struct{}, len(path)+1)
	for k := range path {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return next, nil
}

// resolveFrom performs the async half of Lift: it walks x, resolving every
// pending and nested Output, then settles all five fields of o together so
// that every reader sees a consistent view of the same resolution.
func (o *Output) resolveFrom(x any) {
	val, m, err := resolve(x, map[uintptr]struct{}{})
	if err != nil {
		rejectAll(o, err)
		return
	}

	known := m.known && !containsUnknown(val)
	o.value.Resolve(val)
	o.known.Resolve(known)
	o.secret.Resolve(m.secret)
	o.deps.Resolve(m.deps)
	o.allDeps.Resolve(m.allDeps)
}

func rejectAll(o *Output, err error) {
	o.value.Reject(err)
	o.known.Reject(err)
	o.secret.Reject(err)
	o.deps.Reject(err)
	o.allDeps.Reject(err)
}

// checkCycleSync runs a non-blocking identity DFS over the slices and maps
// in x, descending into neither Pending handles nor Outputs since
// awaiting them would block. It catches a direct cycle (e.g. a map that
// contains itself) before Lift spawns any goroutine.
func checkCycleSync(x any, path map[uintptr]struct{}) error {
	switch v := x.(type) {
	case *Output, OutputLike, Pending:
		return nil
	case []any:
		next, err := pathPush(path, reflect.ValueOf(v))
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := checkCycleSync(e, next); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		next, err := pathPush(path, reflect.ValueOf(v))
		if err != nil {
			return err
		}
		for _, e := range v {
			if err := checkCycleSync(e, next); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}
