// SPDX-License-Identifier: MPL-2.0

// Package engine selects and drives an installed container engine
// (Podman or Docker) through its command-line interface.
//
// The package never caches container state: the engine's own registry is
// the single source of truth, and every lifecycle decision re-queries it.
// Engine-specific behavior is modeled as a capability set attached to the
// engine at construction time rather than by matching on the engine name.
package engine
