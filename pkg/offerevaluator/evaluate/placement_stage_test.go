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

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
)

type fakeRule struct {
	accept bool
	reason string
}

func (r fakeRule) Evaluate(offer *mesos.Offer, allTasks []*mesos.TaskInfo) (bool, string) {
	return r.accept, r.reason
}

func (r fakeRule) String() string { return "fakeRule" }

func TestPlacementRuleStagePassesWithNoRule(t *testing.T) {
	pool := resourcepool.New(&mesos.Offer{})
	stage := PlacementRuleStage{}
	outcome := stage.Evaluate(pool, nil)
	assert.True(t, outcome.Passing)
}

func TestPlacementRuleStageRejectsWhenRuleFails(t *testing.T) {
	pool := resourcepool.New(&mesos.Offer{})
	stage := PlacementRuleStage{Rule: fakeRule{accept: false, reason: "anti-affinity conflict"}}
	outcome := stage.Evaluate(pool, nil)
	assert.False(t, outcome.Passing)
	assert.Equal(t, "anti-affinity conflict", outcome.Reason)
}

func TestPlacementRuleStagePassesWhenRuleAccepts(t *testing.T) {
	pool := resourcepool.New(&mesos.Offer{})
	stage := PlacementRuleStage{Rule: fakeRule{accept: true, reason: "ok"}}
	outcome := stage.Evaluate(pool, nil)
	assert.True(t, outcome.Passing)
}
