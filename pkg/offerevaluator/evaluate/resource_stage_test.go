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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/value"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

func scalarOfferResource(name, role string, v float64) *mesos.Resource {
	scalarType := mesos.Value_SCALAR
	return &mesos.Resource{Name: &name, Type: &scalarType, Role: &role, Scalar: &mesos.Value_Scalar{Value: &v}}
}

func TestResourceEvaluationStageReservesFresh(t *testing.T) {
	offer := &mesos.Offer{Resources: []*mesos.Resource{scalarOfferResource("cpus", "web", 4.0)}}
	pool := resourcepool.New(offer)
	builder := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)

	stage := ResourceEvaluationStage{
		TaskName:  "server",
		Spec:      specification.ResourceSpec{Name: "cpus", Value: value.Scalar(1.0), Role: "web"},
		Principal: "svc-principal",
		Generator: &uuid.Sequence{Prefix: "res"},
	}

	outcome := stage.Evaluate(pool, builder)
	require.True(t, outcome.Passing)
	require.Len(t, outcome.Recommendations, 1)

	task := builder.TaskInfoFor("server")
	require.Len(t, task.GetResourcesList(), 1)
}

func TestResourceEvaluationStageFailsWhenInsufficient(t *testing.T) {
	offer := &mesos.Offer{Resources: []*mesos.Resource{scalarOfferResource("cpus", "web", 0.5)}}
	pool := resourcepool.New(offer)
	builder := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)

	stage := ResourceEvaluationStage{
		TaskName:  "server",
		Spec:      specification.ResourceSpec{Name: "cpus", Value: value.Scalar(1.0), Role: "web"},
		Principal: "svc-principal",
		Generator: &uuid.Sequence{},
	}

	outcome := stage.Evaluate(pool, builder)
	assert.False(t, outcome.Passing)
}

func TestResourceEvaluationStageRebindsExisting(t *testing.T) {
	labels := (&mesos.Labels{}).With("resource_id", "res-1")
	scalarType := mesos.Value_SCALAR
	v := 1.0
	r := &mesos.Resource{
		Name: strPtrResourceStage("cpus"), Type: &scalarType, Scalar: &mesos.Value_Scalar{Value: &v},
		Reservations: []*mesos.Resource_ReservationInfo{{Role: strPtrResourceStage("web"), Labels: labels}},
	}
	pool := resourcepool.New(&mesos.Offer{Resources: []*mesos.Resource{r}})
	builder := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)

	stage := ResourceEvaluationStage{
		TaskName:   "server",
		Spec:       specification.ResourceSpec{Name: "cpus", Value: value.Scalar(1.0), Role: "web"},
		ResourceID: "res-1",
		Principal:  "svc-principal",
		Generator:  &uuid.Sequence{},
	}

	outcome := stage.Evaluate(pool, builder)
	require.True(t, outcome.Passing)
	assert.Empty(t, outcome.Recommendations)
}

func strPtrResourceStage(s string) *string { return &s }
