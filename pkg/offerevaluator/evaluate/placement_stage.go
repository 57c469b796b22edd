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
	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// PlacementRuleStage evaluates a pod's placement predicate against the
// offer under consideration and every task already known to the service.
// It never touches the pool or the builder; a rejection here has nothing
// to do with resource quantity (e.g. anti-affinity).
type PlacementRuleStage struct {
	Rule     specification.PlacementRule
	AllTasks []*mesos.TaskInfo
}

// Name implements Stage.
func (s PlacementRuleStage) Name() string { return "PlacementRuleStage" }

// Evaluate implements Stage.
func (s PlacementRuleStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	if s.Rule == nil {
		return Pass("no placement rule configured")
	}
	ok, reason := s.Rule.Evaluate(pool.Offer(), s.AllTasks)
	if !ok {
		return Fail(reason)
	}
	return Pass(reason)
}
