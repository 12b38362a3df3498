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

import "github.com/crossplane/xoutput/internal/phase"

// Apply derives a new Output by running f over this Output's value. f is
// invoked when either the source is known, or the current phase is not a
// dry run — in the latter case f runs for its side effects (and for any
// dependencies or nested Outputs it surfaces) even though the source value
// it receives may still be synthetic. Whatever f returns is lifted again,
// so it may itself be, or contain, another Output.
//
// Secrecy is asymmetric: the result is secret if the source is secret, or
// if the source is known and f's result is secret. A secret produced only
// because an unknown source forced invocation is not itself propagated,
// since there is nothing real yet to protect.
//
// Deps never change: they always describe this Output alone. AllDeps grows
// to include whatever f's result depends on, but only once f has actually
// been invoked; otherwise it is left exactly as the source's.
func (o *Output) Apply(f func(any) (any, error)) *Output {
	out := newPending()
	go out.applyFrom(o, f)
	return out
}

func (out *Output) applyFrom(src *Output, f func(any) (any, error)) {
	deps, err := src.Deps()
	if err != nil {
		rejectAll(out, err)
		return
	}
	out.deps.Resolve(deps)

	known, err := src.IsKnown()
	if err != nil {
		rejectAll(out, err)
		return
	}

	invoke := known || !phase.IsDryRun()
	if !invoke {
		allDeps, err := src.AllDeps()
		if err != nil {
			rejectAll(out, err)
			return
		}
		secret, err := src.IsSecret()
		if err != nil {
			rejectAll(out, err)
			return
		}
		out.value.Resolve(nil)
		out.known.Resolve(false)
		out.secret.Resolve(secret)
		out.allDeps.Resolve(allDeps)
		return
	}

	raw, err := src.rawValue()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}

	result, ferr := f(raw)
	if ferr != nil {
		rejectAllValue(out, ferr)
		resolveSourceOnly(out, src)
		return
	}

	inner, err := Lift(result)
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}

	innerVal, err := inner.rawValue()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}
	innerKnown, err := inner.IsKnown()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}
	innerSecret, err := inner.IsSecret()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}
	innerAllDeps, err := inner.AllDeps()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}

	secretSrc, err := src.IsSecret()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}
	allDepsSrc, err := src.AllDeps()
	if err != nil {
		rejectAllValue(out, err)
		resolveSourceOnly(out, src)
		return
	}

	out.value.Resolve(innerVal)
	out.known.Resolve(known && innerKnown && !containsUnknown(innerVal))
	out.secret.Resolve(secretSrc || (known && innerSecret))
	out.allDeps.Resolve(allDepsSrc.Union(innerAllDeps))
}

// resolveSourceOnly settles secret and allDeps from src alone, for the
// error paths above where value/known have already been rejected but the
// other two fields can still carry useful information.
func resolveSourceOnly(out *Output, src *Output) {
	if secret, err := src.IsSecret(); err == nil {
		out.secret.Resolve(secret)
	} else {
		out.secret.Reject(err)
	}
	if allDeps, err := src.AllDeps(); err == nil {
		out.allDeps.Resolve(allDeps)
	} else {
		out.allDeps.Reject(err)
	}
}

func rejectAllValue(out *Output, err error) {
	out.value.Reject(err)
	out.known.Reject(err)
}
