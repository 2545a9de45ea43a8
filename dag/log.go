// Copyright (c) 2025 The Vigil Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dag

import "github.com/decred/slog"

// log is the package-level logger. It is a no-op until UseLogger is
// called, matching the dcrd convention of every subsystem owning its own
// disabled-by-default logger rather than reaching for a global one.
var log = slog.Disabled

// UseLogger sets the logger used by this package. It must be called before
// any goroutine starts using the package if the caller wants build/update
// activity logged from the start.
func UseLogger(logger slog.Logger) {
	log = logger
}
