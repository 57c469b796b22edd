// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resourcepool

import "github.com/mesosphere/dcos-commons/pkg/mesos"

// Requirement describes what a single evaluation stage wants to consume
// from a pool. It is intentionally a plain value, not an interface or a
// subclassed hierarchy — Pool.Consume dispatches on its fields.
type Requirement struct {
	Name       string
	Role       string
	Value      *mesos.Value
	resourceID string
	hasID      bool
	atomic     bool
}

// Expects builds a requirement for a resource that was already reserved in
// a prior evaluation (an existing pod being relaunched): the pool must find
// it by resource_id rather than pick a fresh one.
func Expects(resourceID, name string, value *mesos.Value) Requirement {
	return Requirement{Name: name, Value: value, resourceID: resourceID, hasID: true}
}

// ReserveAtomic builds a requirement for a brand new atomic (MOUNT-disk)
// reservation: the pool must hand back a whole unreserved atomic resource,
// never a partial one.
func ReserveAtomic(name string, value *mesos.Value) Requirement {
	return Requirement{Name: name, Value: value, atomic: true}
}

// ReserveDivisible builds a requirement for a brand new divisible
// reservation (cpus, mem, disk-ROOT, ports) out of a role's merged pool.
func ReserveDivisible(name, role string, value *mesos.Value) Requirement {
	return Requirement{Name: name, Role: role, Value: value}
}

// ExpectsResource reports whether this requirement names a previously
// reserved resource_id.
func (r Requirement) ExpectsResource() bool { return r.hasID }

// ResourceID returns the resource_id this requirement expects to find, and
// whether one was set.
func (r Requirement) ResourceID() (string, bool) { return r.resourceID, r.hasID }

// IsAtomic reports whether this requirement is a fresh atomic reservation.
func (r Requirement) IsAtomic() bool { return r.atomic }

// ReservesResource reports whether satisfying this requirement requires a
// RESERVE operation (i.e. it names neither an existing resource_id nor an
// atomic pick already tagged reserved).
func (r Requirement) ReservesResource() bool { return !r.hasID }
