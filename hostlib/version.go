// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hostlib

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// VersionError reports a component whose registered version does not
// satisfy a required constraint.
type VersionError struct {
	Component  string
	Constraint string
	Version    string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("require_versions: %s %s does not satisfy %q", e.Component, e.Version, e.Constraint)
}

// RegisterVersion records component's version so a later
// require_versions call can check it, per SPEC_FULL.md §4.3's
// (ambient) addition to make require_versions testable without
// shelling out to every tool it might gate.
func RegisterVersion(component, version string) {
	v, err := semver.NewVersion(version)
	if err != nil {
		panic(fmt.Errorf("register_version(%q, %q): %w", component, version, err))
	}
	active.mu.Lock()
	defer active.mu.Unlock()
	active.versions[component] = v
}

// RequireVersions checks each component=constraint pair against the
// registered version table, panicking on the first unmet constraint,
// per spec.md §6's "Version declaration".
func RequireVersions(requirements map[string]string) {
	active.mu.Lock()
	defer active.mu.Unlock()
	for component, constraint := range requirements {
		v, ok := active.versions[component]
		if !ok {
			panic(fmt.Errorf("require_versions: component %q has no registered version", component))
		}
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			panic(fmt.Errorf("require_versions: invalid constraint %q for %q: %w", constraint, component, err))
		}
		if !c.Check(v) {
			panic(&VersionError{Component: component, Constraint: constraint, Version: v.String()})
		}
	}
}
