package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/twinfer/kfbx/pkg/fbx"
)

// Diff returns a human-readable diff between two decoded trees, or "" when
// they are equal. Nil and empty slices compare equal.
func Diff(want, got any) string {
	return cmp.Diff(want, got,
		cmpopts.EquateEmpty(),
		cmp.Comparer(func(a, b fbx.Property) bool { return a.Equal(b) }),
	)
}
