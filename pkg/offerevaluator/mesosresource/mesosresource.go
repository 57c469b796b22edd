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

package mesosresource

import (
	"fmt"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

// MesosResource is a read-only view over a raw offer resource, deriving the
// predicates the rest of the core needs instead of forcing every caller to
// re-walk the reservation stack.
type MesosResource struct {
	resource   *mesos.Resource
	resourceID string
	hasID      bool
}

// New wraps a raw resource. The resource_id label (if any) is resolved once
// up front: the reservation stack is preferred over the deprecated
// single-reservation field when both are present, and within either, the
// most recently applied reservation wins.
func New(resource *mesos.Resource) *MesosResource {
	id, ok := resolveResourceID(resource)
	return &MesosResource{resource: resource, resourceID: id, hasID: ok}
}

func resolveResourceID(r *mesos.Resource) (string, bool) {
	return resolveLabel(r, ResourceIDKey)
}

// resolveLabel walks a resource's reservation stack for a label, most
// recently applied reservation first, falling back to the deprecated
// single-reservation field if the stack is empty.
func resolveLabel(r *mesos.Resource, key string) (string, bool) {
	stack := r.GetReservationsList()
	for i := len(stack) - 1; i >= 0; i-- {
		if v, ok := stack[i].GetLabels().Get(key); ok && v != "" {
			return v, true
		}
	}
	if r.HasReservation() && r.GetReservation().HasLabels() {
		if v, ok := r.GetReservation().GetLabels().Get(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Resource returns the underlying raw resource.
func (m *MesosResource) Resource() *mesos.Resource { return m.resource }

// Name is the resource's name (cpus, mem, disk, ports, ...).
func (m *MesosResource) Name() string { return m.resource.GetName() }

// Value returns the resource's typed Value.
func (m *MesosResource) Value() *mesos.Value { return m.resource.GetValue() }

// IsAtomic reports whether the resource is an indivisible MOUNT disk.
func (m *MesosResource) IsAtomic() bool {
	disk := m.resource.GetDisk()
	return disk.HasSource() && disk.GetSource().GetType() == mesos.Resource_DiskInfo_Source_MOUNT
}

// HasResourceID reports whether any reservation on this resource carries a
// non-empty resource_id label.
func (m *MesosResource) HasResourceID() bool { return m.hasID }

// ResourceID returns the resource_id label, and whether one was present.
func (m *MesosResource) ResourceID() (string, bool) { return m.resourceID, m.hasID }

// Label returns the value of an arbitrary label carried by any reservation
// on this resource, e.g. dynamic_port or the VIP labels.
func (m *MesosResource) Label(key string) (string, bool) {
	return resolveLabel(m.resource, key)
}

// IsUnreserved reports whether the resource carries no reservation: either
// its role is explicitly the default wildcard role, or it has neither a
// reservation stack nor the deprecated single-reservation field.
func (m *MesosResource) IsUnreserved() bool {
	if m.resource.HasRole() && m.resource.GetRole() == DefaultRole {
		return true
	}
	return !m.resource.HasReservation() && m.resource.ReservationsCount() == 0
}

// IsReserved is the complement of IsUnreserved.
func (m *MesosResource) IsReserved() bool { return !m.IsUnreserved() }

// Role returns the resource's effective role: the last entry of its
// reservation stack, falling back to the deprecated single-reservation
// role, falling back to the resource's own role, falling back to the
// default wildcard role.
func (m *MesosResource) Role() string {
	if n := m.resource.ReservationsCount(); n > 0 {
		return m.resource.GetReservationsList()[n-1].GetRole()
	}
	if m.resource.HasReservation() && m.resource.GetReservation().GetRole() != "" {
		return m.resource.GetReservation().GetRole()
	}
	if m.resource.HasRole() {
		return m.resource.GetRole()
	}
	return DefaultRole
}

// Principal returns the principal recorded on the deprecated
// single-reservation field, or "" if absent.
func (m *MesosResource) Principal() string {
	if m.resource.HasReservation() {
		return m.resource.GetReservation().GetPrincipal()
	}
	return ""
}

// String gives a compact, hand-written debug rendering; it deliberately
// avoids reflection-based formatting.
func (m *MesosResource) String() string {
	id, hasID := m.ResourceID()
	idPart := "-"
	if hasID {
		idPart = id
	}
	return fmt.Sprintf("MesosResource{name=%s role=%s atomic=%v resourceId=%s value=%s}",
		m.Name(), m.Role(), m.IsAtomic(), idPart, describeValue(m.Value()))
}

func describeValue(v *mesos.Value) string {
	switch v.GetType() {
	case mesos.Value_SCALAR:
		return fmt.Sprintf("%.2f", v.GetScalar().GetValue())
	case mesos.Value_RANGES:
		out := ""
		for _, r := range v.GetRanges().GetRange() {
			if out != "" {
				out += ","
			}
			out += fmt.Sprintf("[%d-%d]", r.GetBegin(), r.GetEnd())
		}
		return out
	default:
		return "?"
	}
}
