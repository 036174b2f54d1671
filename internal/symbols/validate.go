package symbols

import (
	"errors"
	"fmt"
	"slices"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Parent/child backlinks.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		id := ScopeID(idx) //nolint:gosec // bounded by arena length
		scope := t.Scopes.data[idx]
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			if parent == nil || scope.Parent == id {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", id, scope.Parent))
				continue
			}
			if !slices.Contains(parent.Children, id) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, scope.Parent))
			}
		} else if id != t.root {
			errs = append(errs, fmt.Errorf("scope %d is detached from the root", id))
		}
		for name, vid := range scope.Locals {
			v := t.Vars.Get(vid)
			if v == nil || v.Name != name || v.Scope != id {
				errs = append(errs, fmt.Errorf("scope %d local %q points to a foreign entry", id, name))
			}
		}
	}

	// Offsets are a running sum of sizes in declaration order.
	var next uint64
	for idx := 1; idx < len(t.Vars.data); idx++ {
		v := t.Vars.data[idx]
		if v.Offset != next {
			errs = append(errs, fmt.Errorf("variable %q at offset %d, expected %d", v.Name, v.Offset, next))
		}
		next = v.Offset + t.VarType(VarID(idx)).Size() //nolint:gosec // bounded by arena length
	}
	if next != t.alloc.Used() {
		errs = append(errs, fmt.Errorf("allocator used %d bytes, variables cover %d", t.alloc.Used(), next))
	}

	return errors.Join(errs...)
}
