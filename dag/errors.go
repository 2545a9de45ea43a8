// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dag

import (
	"vigil.network/dagpow/internal/dagerr"
)

// allocFailed converts a panic recovered while allocating or filling a
// DAG's entry slice into a dagerr.AllocationFailed error. Go does not
// surface allocation failure as a normal error return; a sufficiently
// large make() instead panics the goroutine, so this is the only place an
// AllocationFailed error can originate.
func allocFailed(recovered interface{}) error {
	return dagerr.New(dagerr.AllocationFailed, "dag: failed to allocate DAG: %v", recovered)
}
