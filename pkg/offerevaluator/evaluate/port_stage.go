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
	"strconv"
	"strings"

	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/mesosresource"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/recommendation"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/value"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// PortEvaluationStage handles one named port. A static port (Port>0) is
// consumed at that exact number; a dynamic port (Port==0) is picked as the
// lowest available port in the role's pool and labeled so it can be
// rebound by name on a later relaunch.
type PortEvaluationStage struct {
	TaskName   string
	Spec       specification.PortSpec
	ResourceID string
	Principal  string
	Generator  uuid.Generator
}

// Name implements Stage.
func (s PortEvaluationStage) Name() string {
	return fmt.Sprintf("PortEvaluationStage(%s)", s.Spec.Name)
}

// Evaluate implements Stage.
func (s PortEvaluationStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	if s.ResourceID != "" {
		return s.evaluateExisting(pool, builder)
	}
	return s.evaluateNew(pool, builder)
}

func (s PortEvaluationStage) evaluateExisting(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	found, ok := pool.ReservedResourceByID(s.ResourceID)
	if !ok {
		return Fail(fmt.Sprintf("failed to find reserved port '%s' with id %s", s.Spec.Name, s.ResourceID))
	}
	port, ok := value.LowestPort(found.Value())
	if !ok {
		return Fail(fmt.Sprintf("reserved resource for port '%s' carries no port range", s.Spec.Name))
	}
	req := resourcepool.Expects(s.ResourceID, s.Spec.Name, found.Value())
	consumed, ok := pool.Consume(req)
	if !ok {
		return Fail(fmt.Sprintf("failed to rebind reserved port '%s'", s.Spec.Name))
	}
	builder.SetProtos(s.TaskName, consumed.Resource())
	builder.SetPort(s.Spec.Name, port)
	if s.Spec.IsDynamic() || s.Spec.EnvName != "" {
		builder.SetEnv(s.TaskName, envName(s.Spec), strconv.FormatUint(uint64(port), 10))
	}
	return Pass(fmt.Sprintf("reused port reservation for '%s' at %d", s.Spec.Name, port))
}

func (s PortEvaluationStage) evaluateNew(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	desired := value.SingleRange(uint64(s.Spec.Port))
	var extra []labelPair

	if s.Spec.IsDynamic() {
		available, ok := pool.ReservableMergedPool()[s.Spec.Role][mesosresource.NamePorts]
		port, foundPort := value.LowestPort(available)
		if !ok || !foundPort {
			return Fail(fmt.Sprintf("no unreserved ports available in role %s", s.Spec.Role))
		}
		desired = value.SingleRange(uint64(port))
		extra = append(extra, labelPair{Key: mesosresource.DynamicPortKey, Value: s.Spec.Name})
	}

	req := resourcepool.ReserveDivisible(mesosresource.NamePorts, s.Spec.Role, desired)
	found, ok := pool.Consume(req)
	if !ok {
		return Fail(fmt.Sprintf("port '%s' unavailable in role %s", s.Spec.Name, s.Spec.Role))
	}
	port, _ := value.LowestPort(found.Value())
	newID := s.Generator.New()
	reserved := withReservation(found.Resource(), s.Spec.Role, s.Principal, newID, extra...)

	builder.SetProtos(s.TaskName, reserved)
	builder.SetPort(s.Spec.Name, port)
	if s.Spec.IsDynamic() || s.Spec.EnvName != "" {
		builder.SetEnv(s.TaskName, envName(s.Spec), strconv.FormatUint(uint64(port), 10))
	}
	return Pass(fmt.Sprintf("reserved port '%s' at %d", s.Spec.Name, port), recommendation.NewReserve(pool.Offer().GetId(), reserved))
}

func envName(spec specification.PortSpec) string {
	if spec.EnvName != "" {
		return spec.EnvName
	}
	return "PORT_" + strings.ToUpper(spec.Name)
}

// NamedVIPEvaluationStage is a PortEvaluationStage that additionally
// registers the port under a named virtual IP, carried as two extra
// reservation labels.
type NamedVIPEvaluationStage struct {
	TaskName   string
	Spec       specification.NamedVIPSpec
	ResourceID string
	Principal  string
	Generator  uuid.Generator
}

// Name implements Stage.
func (s NamedVIPEvaluationStage) Name() string {
	return fmt.Sprintf("NamedVIPEvaluationStage(%s)", s.Spec.VIPName)
}

// Evaluate implements Stage.
func (s NamedVIPEvaluationStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	if s.ResourceID != "" {
		delegate := PortEvaluationStage{
			TaskName:   s.TaskName,
			Spec:       s.Spec.PortSpec,
			ResourceID: s.ResourceID,
			Principal:  s.Principal,
			Generator:  s.Generator,
		}
		return delegate.evaluateExisting(pool, builder)
	}

	desired := value.SingleRange(uint64(s.Spec.Port))
	extra := []labelPair{
		{Key: mesosresource.VIPKeyLabel, Value: s.Spec.VIPName},
		{Key: mesosresource.VIPValueLabel, Value: strconv.FormatUint(uint64(s.Spec.VIPPort), 10)},
	}

	if s.Spec.IsDynamic() {
		available, ok := pool.ReservableMergedPool()[s.Spec.Role][mesosresource.NamePorts]
		port, foundPort := value.LowestPort(available)
		if !ok || !foundPort {
			return Fail(fmt.Sprintf("no unreserved ports available in role %s for VIP %s", s.Spec.Role, s.Spec.VIPName))
		}
		desired = value.SingleRange(uint64(port))
		extra = append(extra, labelPair{Key: mesosresource.DynamicPortKey, Value: s.Spec.Name})
	}

	req := resourcepool.ReserveDivisible(mesosresource.NamePorts, s.Spec.Role, desired)
	found, ok := pool.Consume(req)
	if !ok {
		return Fail(fmt.Sprintf("VIP port '%s' unavailable in role %s", s.Spec.VIPName, s.Spec.Role))
	}
	port, _ := value.LowestPort(found.Value())
	newID := s.Generator.New()
	reserved := withReservation(found.Resource(), s.Spec.Role, s.Principal, newID, extra...)

	builder.SetProtos(s.TaskName, reserved)
	builder.SetPort(s.Spec.Name, port)
	if s.Spec.IsDynamic() || s.Spec.EnvName != "" {
		builder.SetEnv(s.TaskName, envName(s.Spec.PortSpec), strconv.FormatUint(uint64(port), 10))
	}
	return Pass(fmt.Sprintf("reserved VIP port '%s' at %d", s.Spec.VIPName, port), recommendation.NewReserve(pool.Offer().GetId(), reserved))
}
