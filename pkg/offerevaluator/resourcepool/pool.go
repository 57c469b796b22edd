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

// Package resourcepool implements the per-offer resource pool: a mutable
// view over a single offer, partitioned into unreserved-atomic,
// dynamically-reserved, and reservable-merged sub-pools, with a single
// consume() entry point that never panics and never over-consumes, aware
// of atomic MOUNT disks and role-scoped reservation stacks in addition to
// ordinary scalar bin-packing.
package resourcepool

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/mesosresource"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/value"
)

// Pool is a mutable, single-offer view of available resources. It is never
// shared between offers or between concurrent evaluations.
type Pool struct {
	offer *mesos.Offer

	// unreservedAtomic holds unreserved MOUNT disks, keyed by resource name
	// (in practice always "disk"), in offer order.
	unreservedAtomic map[string][]*mesosresource.MesosResource

	// dynamicallyReserved holds every resource that carries a resource_id
	// label, keyed by that id.
	dynamicallyReserved map[string]*mesosresource.MesosResource

	// reservableMerged holds the aggregated scalar/ranges value available
	// per role, for every non-atomic resource without a resource_id.
	reservableMerged map[string]map[string]*mesos.Value
}

// New builds a pool from an offer's current resources.
func New(offer *mesos.Offer) *Pool {
	p := &Pool{}
	p.reinit(offer)
	return p
}

// Update replaces the pool's contents with a freshly (re)computed
// partitioning of the given offer, equivalent to constructing a new pool.
func (p *Pool) Update(offer *mesos.Offer) {
	p.reinit(offer)
}

// Offer returns the offer this pool represents.
func (p *Pool) Offer() *mesos.Offer { return p.offer }

func (p *Pool) reinit(offer *mesos.Offer) {
	p.offer = offer

	var resources []*mesosresource.MesosResource
	for _, r := range offer.GetResources() {
		resources = append(resources, mesosresource.New(r))
	}

	p.unreservedAtomic = map[string][]*mesosresource.MesosResource{}
	p.dynamicallyReserved = map[string]*mesosresource.MesosResource{}
	p.reservableMerged = map[string]map[string]*mesos.Value{}

	for _, r := range resources {
		switch {
		case r.HasResourceID():
			id, _ := r.ResourceID()
			p.dynamicallyReserved[id] = r
		case r.IsAtomic():
			// A statically reserved atomic resource with no resource_id
			// label is not distinguishable from an unreserved one for our
			// purposes: we can only rebind atomic resources by id, so both
			// live in the same first-fit pool.
			p.unreservedAtomic[r.Name()] = append(p.unreservedAtomic[r.Name()], r)
		default:
			// Either genuinely unreserved, or reserved-but-non-atomic
			// without a resource_id (a statically reserved resource this
			// core did not create). Both merge into their role's pool so
			// a stage requesting that role can consume from it.
			roleBucket, ok := p.reservableMerged[r.Role()]
			if !ok {
				roleBucket = map[string]*mesos.Value{}
				p.reservableMerged[r.Role()] = roleBucket
			}
			current, ok := roleBucket[r.Name()]
			if !ok {
				current = value.Zero(r.Value().GetType())
			}
			roleBucket[r.Name()] = value.Add(current, r.Value())
		}
	}
}

// UnreservedAtomicPool exposes the atomic sub-pool, keyed by resource name.
func (p *Pool) UnreservedAtomicPool() map[string][]*mesosresource.MesosResource {
	return p.unreservedAtomic
}

// DynamicallyReservedPool exposes the resource_id-keyed sub-pool.
func (p *Pool) DynamicallyReservedPool() map[string]*mesosresource.MesosResource {
	return p.dynamicallyReserved
}

// ReservableMergedPool exposes the role -> name -> Value sub-pool.
func (p *Pool) ReservableMergedPool() map[string]map[string]*mesos.Value {
	return p.reservableMerged
}

// ReservedResourceByID returns the currently reserved resource with the
// given resource_id, if any.
func (p *Pool) ReservedResourceByID(id string) (*mesosresource.MesosResource, bool) {
	r, ok := p.dynamicallyReserved[id]
	return r, ok
}

// Consume attempts to satisfy req against the pool, mutating it in place,
// and returns the resource that was consumed. It never panics; a
// requirement that cannot be met returns (nil, false) and logs why.
func (p *Pool) Consume(req Requirement) (*mesosresource.MesosResource, bool) {
	switch {
	case req.ExpectsResource():
		return p.consumeReserved(req)
	case req.IsAtomic():
		return p.consumeAtomic(req)
	default:
		return p.consumeReservableMerged(req)
	}
}

func (p *Pool) consumeReserved(req Requirement) (*mesosresource.MesosResource, bool) {
	id, _ := req.ResourceID()
	found, ok := p.dynamicallyReserved[id]
	if !ok {
		log.WithFields(log.Fields{
			"name":       req.Name,
			"resourceId": id,
		}).Warn("failed to find reserved resource by id")
		return nil, false
	}

	if found.IsAtomic() {
		if !value.Sufficient(req.Value, found.Value()) {
			log.WithFields(log.Fields{
				"name":     req.Name,
				"desired":  describeValue(req.Value),
				"reserved": describeValue(found.Value()),
			}).Warn("reserved atomic quantity is insufficient")
			return nil, false
		}
		delete(p.dynamicallyReserved, id)
		return found, true
	}

	// Divisible reserved resource: may need to return only part of it and
	// write the remainder back.
	if value.Compare(found.Value(), req.Value) > 0 {
		remainder := found.Resource().WithValue(value.Subtract(found.Value(), req.Value))
		p.dynamicallyReserved[id] = mesosresource.New(remainder)
		claimed := found.Resource().WithValue(req.Value)
		return mesosresource.New(claimed), true
	}
	delete(p.dynamicallyReserved, id)
	return found, true
}

func (p *Pool) consumeAtomic(req Requirement) (*mesosresource.MesosResource, bool) {
	candidates := p.unreservedAtomic[req.Name]

	var picked *mesosresource.MesosResource
	var remaining []*mesosresource.MesosResource
	for _, candidate := range candidates {
		if picked == nil && value.Sufficient(req.Value, candidate.Value()) {
			picked = candidate
			// Deliberately do NOT break: every remaining candidate is
			// still walked so `remaining` reflects the full filtered set,
			// matching the source's behavior of rewriting the whole list
			// even once a match has been found.
			continue
		}
		remaining = append(remaining, candidate)
	}

	if len(remaining) == 0 {
		delete(p.unreservedAtomic, req.Name)
	} else {
		p.unreservedAtomic[req.Name] = remaining
	}

	if picked == nil {
		if candidates == nil {
			log.WithField("name", req.Name).Info("offer lacks any atomic resources with this name")
		} else {
			log.WithFields(log.Fields{
				"name":      req.Name,
				"count":     len(candidates),
				"desired":   describeValue(req.Value),
			}).Info("offered quantity in all atomic instances is insufficient")
		}
		return nil, false
	}
	return picked, true
}

func (p *Pool) consumeReservableMerged(req Requirement) (*mesosresource.MesosResource, bool) {
	roleBucket, ok := p.reservableMerged[req.Role]
	if !ok {
		log.WithField("role", req.Role).Info("no unreserved resources available in role")
		return nil, false
	}

	available, ok := roleBucket[req.Name]
	if !ok || !value.Sufficient(req.Value, available) {
		if !ok {
			log.WithField("name", req.Name).Info("offer lacks any resources with this name")
		} else {
			log.WithFields(log.Fields{
				"name":    req.Name,
				"desired": describeValue(req.Value),
				"offered": describeValue(available),
			}).Info("offered quantity is insufficient")
		}
		return nil, false
	}

	roleBucket[req.Name] = value.Subtract(available, req.Value)
	return mesosresource.New(unreservedResource(req.Name, req.Value, req.Role)), true
}

// ReleaseAtomic puts a previously-reserved atomic resource back into the
// unreserved-atomic pool, clearing its reservation, disk persistence and
// volume, and resetting its role to the default.
func (p *Pool) ReleaseAtomic(res *mesosresource.MesosResource) {
	cleared := res.Resource().Clone()
	cleared.Reservations = nil
	cleared.Reservation = nil
	role := mesosresource.DefaultRole
	cleared.Role = &role
	if cleared.HasDisk() {
		disk := *cleared.Disk
		disk.Persistence = nil
		disk.Volume = nil
		cleared.Disk = &disk
	}
	p.unreservedAtomic[res.Name()] = append(p.unreservedAtomic[res.Name()], mesosresource.New(cleared))
}

func unreservedResource(name string, v *mesos.Value, role string) *mesos.Resource {
	r := &mesos.Resource{Name: &name, Type: v.Type, Role: &role}
	switch v.GetType() {
	case mesos.Value_SCALAR:
		r.Scalar = v.GetScalar()
	case mesos.Value_RANGES:
		r.Ranges = v.GetRanges()
	case mesos.Value_SET:
		r.Set = v.GetSet()
	}
	return r
}

func describeValue(v *mesos.Value) string {
	if v == nil {
		return "<nil>"
	}
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
		return "value"
	}
}
