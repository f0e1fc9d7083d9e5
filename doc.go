/*
   Copyright 2025 The DIRPX Authors.

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

// Package lazy declares per-instance lazy attributes: values computed on
// first read, memoized on the instance, and loadable all at once.
//
// # Declaring
//
// A host type opts in by embedding slot.Table, which holds the instance's
// slots. Attributes are declared once, usually at package level:
//
//	type Report struct {
//		slot.Table
//		Lines []int
//	}
//
//	var total = lazy.MustReader("total", func(r *Report) (int, error) {
//		sum := 0
//		for _, l := range r.Lines {
//			sum += l
//		}
//		return sum, nil
//	})
//
// total.Get(r) runs the initializer on the first call and returns the stored
// value afterwards. A zero result (0, "", nil) is stored like any other; a
// slot is either empty or filled, never "falsy". An initializer error is
// returned unchanged and leaves the slot empty, so the next read retries.
//
// DeclareAccessor also generates Set, which fills the slot directly without
// running the initializer.
//
// Names must match [a-z0-9_]+. A bad name yields an *apis.NamingError; a nil
// initializer yields an *apis.DefinitionError. The Must variants panic with
// those errors instead, which surfaces a broken declaration at init time.
//
// # Ancestry
//
// Go has no inheritance, so ancestry is declared explicitly:
//
//	type AuditedReport struct {
//		Report
//		Auditor string
//	}
//
//	func init() {
//		_ = lazy.Extend(func(a *AuditedReport) *Report { return &a.Report })
//	}
//
// The projection returns the parent instance whose slots and initializers
// apply. AggregatedNames[*AuditedReport]() is then the union of both types'
// names. A child may override a parent's name, keeping its value type.
// Parents may have parents, several parents may share an ancestor,
// and a linked type with no declarations of its own still passes its
// ancestors' names through. Cycles are rejected.
//
// # Eager loading
//
// EagerLoad(o) recomputes the aggregated name set for o's type and reads
// every attribute whose slot is empty, in name order. It stops at the first
// initializer error. EagerLoadAll keeps going and returns all errors
// combined with go.uber.org/multierr.
//
// # Concurrency
//
// The registry is safe for concurrent declaration and lookup. With
// Config.SingleFlight (the default) a slot's initializer runs at most once
// per successful fill even when many goroutines read it first at the same
// time; without it racing readers may each run the initializer and the first
// stored result wins. SingleFlight is captured from the registry when an
// attribute is declared.
//
// # Process-wide state
//
// Declare*, Extend, EagerLoad and the name helpers use the process-wide
// registry returned by Registry(). Config/SetConfig, SetRegistry, SetBuilder
// and SetAll swap it atomically; SetConfig rebuilds it through the builder
// and carries every declaration over. The *In variants take an explicit
// apis.Registry instead.
package lazy
