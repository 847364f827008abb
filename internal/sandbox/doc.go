// SPDX-License-Identifier: MPL-2.0

// Package sandbox builds and drives host-integrated container sandboxes:
// containers that share the host's home directory, devices, and IPC,
// network, and PID namespaces so that commands executed inside them behave
// like native host shells.
//
// The package has three parts: specification builders that turn a
// declarative description of the desired environment into complete engine
// argument lists for creation and execution, a lifecycle state machine that
// drives a container from inspection through startup readiness to command
// execution, and a clone manager that snapshots a stopped container into a
// reusable image. The container engine itself is always the source of
// truth; observed state is never cached across decisions.
package sandbox
