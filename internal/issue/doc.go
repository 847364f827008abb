// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors that carry remediation
// suggestions alongside the failure, so the CLI can tell the caller not
// just what went wrong but what to run next.
package issue
