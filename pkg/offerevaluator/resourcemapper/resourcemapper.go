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

// Package resourcemapper implements the existing-pod path's reconciliation
// between a TaskSpec's desired ResourceSet and a persisted TaskInfo's
// actual resources: a matching policy driven by name, port number or
// dynamic_port label, and containerPath rather than a single label lookup.
// Roles are not compared: a persisted resource matches a spec of the same
// name whatever role either carries.
package resourcemapper

import (
	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/mesosresource"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// Match pairs a desired spec with the persisted resource that satisfies
// it. Volume is set only when this match came from set.Volumes, since a
// VolumeSpec carries fields (Type, ContainerPath) that AnySpec's other
// variants don't have.
type Match struct {
	Spec        specification.AnySpec
	Volume      *specification.VolumeSpec
	ResourceID  string
	Persistence string // set only for matched volumes
	Resource    *mesos.Resource
}

// Orphan is a persisted resource with no corresponding spec in the current
// ResourceSet; it must be unreserved (and, if a persistent volume,
// destroyed first).
type Orphan struct {
	Resource     *mesos.Resource
	IsPersistent bool
}

// Result is the outcome of mapping one task's persisted resources against
// its current ResourceSet.
type Result struct {
	Matched []Match
	Orphans []Orphan
}

// Map partitions persisted's resources against the ResourceSet's specs.
// Matching policy: exact name for plain resources; for ports and VIPs,
// the persisted resource is always named "ports" (the logical port name
// lives in a label or the spec, not the resource name), so a static port
// matches by port number and a dynamic port matches by its dynamic_port
// label against the spec's logical name; for volumes, containerPath is
// the identity.
func Map(set specification.ResourceSet, persisted *mesos.TaskInfo) Result {
	var result Result
	claimed := map[int]bool{} // index into persisted.GetResourcesList() already matched

	resources := persisted.GetResourcesList()

	for _, spec := range set.Specs() {
		idx, ok := findMatch(spec, resources, claimed)
		if !ok {
			continue
		}
		claimed[idx] = true
		mr := mesosresource.New(resources[idx])
		id, _ := mr.ResourceID()
		result.Matched = append(result.Matched, Match{
			Spec:       spec,
			ResourceID: id,
			Resource:   resources[idx],
		})
	}

	for i := range set.Volumes {
		vol := &set.Volumes[i]
		idx, ok := findVolumeMatch(*vol, resources, claimed)
		if !ok {
			continue
		}
		claimed[idx] = true
		mr := mesosresource.New(resources[idx])
		id, _ := mr.ResourceID()
		persistenceID := resources[idx].GetDisk().GetPersistence().GetId()
		result.Matched = append(result.Matched, Match{
			Spec:        specification.AnySpec{Resource: &vol.ResourceSpec},
			Volume:      vol,
			ResourceID:  id,
			Persistence: persistenceID,
			Resource:    resources[idx],
		})
	}

	for i, r := range resources {
		if claimed[i] {
			continue
		}
		result.Orphans = append(result.Orphans, Orphan{
			Resource:     r,
			IsPersistent: r.HasDisk() && r.GetDisk().GetPersistence() != nil,
		})
	}

	return result
}

func findMatch(spec specification.AnySpec, resources []*mesos.Resource, claimed map[int]bool) (int, bool) {
	base := spec.Base()

	if spec.Port != nil || spec.VIP != nil {
		port, isDynamic := portFields(spec)
		for i, r := range resources {
			if claimed[i] || r.HasDisk() || r.GetName() != mesosresource.NamePorts {
				continue
			}
			if isDynamic {
				label, ok := mesosresource.New(r).Label(mesosresource.DynamicPortKey)
				if !ok || label != base.Name {
					continue
				}
			} else if !rangesContainPort(r, port) {
				continue
			}
			return i, true
		}
		return -1, false
	}

	for i, r := range resources {
		if claimed[i] || r.HasDisk() {
			continue
		}
		if r.GetName() != base.Name {
			continue
		}
		return i, true
	}
	return -1, false
}

// portFields returns a port or VIP spec's static port number (0 if
// dynamic) and whether it is dynamic, without the caller needing to
// know which of the two AnySpec carries the port.
func portFields(spec specification.AnySpec) (uint32, bool) {
	switch {
	case spec.VIP != nil:
		return spec.VIP.Port, spec.VIP.IsDynamic()
	case spec.Port != nil:
		return spec.Port.Port, spec.Port.IsDynamic()
	default:
		return 0, false
	}
}

func findVolumeMatch(vol specification.VolumeSpec, resources []*mesos.Resource, claimed map[int]bool) (int, bool) {
	for i, r := range resources {
		if claimed[i] || !r.HasDisk() {
			continue
		}
		if r.GetDisk().GetVolume().GetContainerPath() == vol.ContainerPath {
			return i, true
		}
	}
	return -1, false
}

func rangesContainPort(r *mesos.Resource, port uint32) bool {
	for _, rng := range r.GetRanges().GetRange() {
		if uint64(port) >= rng.GetBegin() && uint64(port) <= rng.GetEnd() {
			return true
		}
	}
	return false
}
