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

package evaluate

import (
	"fmt"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/recommendation"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// ResourceEvaluationStage handles a plain named resource such as cpus or
// mem. Ports and volumes get their own stage kinds because they need extra
// labels and, for volumes, a DiskInfo; those stages call Pool.Consume
// themselves rather than going through consumeOrReserve below.
type ResourceEvaluationStage struct {
	TaskName   string // "" for an executor-level resource
	Spec       specification.ResourceSpec
	ResourceID string // non-empty on the existing-pod path
	Principal  string
	Generator  uuid.Generator
}

// Name implements Stage.
func (s ResourceEvaluationStage) Name() string {
	return fmt.Sprintf("ResourceEvaluationStage(%s)", s.Spec.Name)
}

// Evaluate implements Stage.
func (s ResourceEvaluationStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	consumed, _, outcome, ok := consumeOrReserve(pool, s.Spec, s.ResourceID, s.Principal, s.Generator)
	if !ok {
		return outcome
	}
	builder.SetProtos(s.TaskName, consumed)
	return outcome
}

// consumeOrReserve is the "reserve if new, bind if existing" helper behind
// ResourceEvaluationStage. When resourceID is non-empty
// it binds to that existing reservation; otherwise it reserves a fresh one
// and returns the resource with a new reservation-stack entry attached.
func consumeOrReserve(pool *resourcepool.Pool, spec specification.ResourceSpec, resourceID, principal string, gen uuid.Generator) (resource *mesos.Resource, id string, outcome Outcome, ok bool) {
	if resourceID != "" {
		req := resourcepool.Expects(resourceID, spec.Name, spec.Value)
		found, foundOK := pool.Consume(req)
		if !foundOK {
			return nil, "", Fail(fmt.Sprintf("failed to find reserved resource '%s' with id %s", spec.Name, resourceID)), false
		}
		return found.Resource(), resourceID, Pass(fmt.Sprintf("reused reservation of '%s'", spec.Name)), true
	}

	req := resourcepool.ReserveDivisible(spec.Name, spec.Role, spec.Value)
	found, foundOK := pool.Consume(req)
	if !foundOK {
		return nil, "", Fail(fmt.Sprintf("no unreserved '%s' available in role %s", spec.Name, spec.Role)), false
	}
	newID := gen.New()
	reserved := withReservation(found.Resource(), spec.Role, principal, newID)
	return reserved, newID, Pass(fmt.Sprintf("reserved '%s'", spec.Name), recommendation.NewReserve(pool.Offer().GetId(), reserved)), true
}
