// SPDX-License-Identifier: MPL-2.0

package sandbox

import (
	"sort"
	"strings"
)

// ValuePredicate reports whether an environment variable value disqualifies
// the variable from being forwarded.
type ValuePredicate func(value string) bool

// EnvFilterPolicy decides which host environment variables are forwarded
// into a container execution. A variable is excluded when its name matches
// an exact denial or a prefix denial, or when any value predicate fires.
//
// HOME and PATH are always excluded here and re-synthesized explicitly by
// the execution spec; forwarding them verbatim would leak host paths that
// do not exist inside the container.
type EnvFilterPolicy struct {
	// ExactNames are variable names never forwarded.
	ExactNames []string
	// Prefixes deny every variable whose name starts with one of them.
	Prefixes []string
	// ValuePredicates deny variables by value content.
	ValuePredicates []ValuePredicate
}

// DefaultEnvFilterPolicy returns the standard policy: HOME, PATH, SHELL,
// and USER by exact name, everything HOST-prefixed (HOST, HOSTNAME, ...),
// and any value containing whitespace or quote characters.
func DefaultEnvFilterPolicy() EnvFilterPolicy {
	return EnvFilterPolicy{
		ExactNames: []string{"HOME", "PATH", "SHELL", "USER"},
		Prefixes:   []string{"HOST"},
		ValuePredicates: []ValuePredicate{
			func(v string) bool { return strings.ContainsAny(v, " \t\n") },
			func(v string) bool { return strings.ContainsAny(v, `'"`) },
		},
	}
}

// Forward reports whether a single variable passes the policy.
func (p EnvFilterPolicy) Forward(name, value string) bool {
	for _, denied := range p.ExactNames {
		if name == denied {
			return false
		}
	}
	for _, prefix := range p.Prefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	for _, denied := range p.ValuePredicates {
		if denied(value) {
			return false
		}
	}
	return true
}

// Filter applies the policy to an os.Environ-style list and returns the
// passing "KEY=VALUE" pairs sorted by name, so the emitted argument list is
// deterministic.
func (p EnvFilterPolicy) Filter(environ []string) []string {
	var out []string
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		if p.Forward(name, value) {
			out = append(out, kv)
		}
	}
	sort.Strings(out)
	return out
}

// fhsPaths are the standard filesystem-hierarchy directories guaranteed to
// be resolvable inside the container.
var fhsPaths = []string{
	"/usr/local/sbin",
	"/usr/local/bin",
	"/usr/sbin",
	"/usr/bin",
	"/sbin",
	"/bin",
}

// SynthesizePath builds the in-container PATH from the host PATH: host
// entries keep their order and precedence, and any standard hierarchy
// directory not already present is appended at the end. The synthesis is
// idempotent.
func SynthesizePath(hostPath string) string {
	seen := make(map[string]struct{})
	var entries []string
	for _, p := range strings.Split(hostPath, ":") {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		entries = append(entries, p)
	}
	for _, p := range fhsPaths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		entries = append(entries, p)
	}
	return strings.Join(entries, ":")
}
