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
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/mesosresource"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/recommendation"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
)

// UnreserveEvaluationStage emits an UNRESERVE for a persisted resource that
// no longer corresponds to any spec in the task's current ResourceSet.
// A persistent volume is DESTROYed
// before it is unreserved; an atomic MOUNT disk is additionally returned
// to the pool's unreserved-atomic pool so a later stage in the same offer
// could still pick it up.
type UnreserveEvaluationStage struct {
	Orphan *mesos.Resource
}

// Name implements Stage.
func (s UnreserveEvaluationStage) Name() string {
	return fmt.Sprintf("UnreserveEvaluationStage(%s)", s.Orphan.GetName())
}

// Evaluate implements Stage.
func (s UnreserveEvaluationStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	offerID := pool.Offer().GetId()
	var recs []recommendation.Recommendation

	if s.Orphan.HasDisk() && s.Orphan.GetDisk().GetPersistence() != nil {
		recs = append(recs, recommendation.NewDestroy(offerID, s.Orphan))
	}
	recs = append(recs, recommendation.NewUnreserve(offerID, s.Orphan))

	res := mesosresource.New(s.Orphan)
	if res.IsAtomic() {
		pool.ReleaseAtomic(res)
	}

	return Pass(fmt.Sprintf("unreserving orphaned resource '%s'", s.Orphan.GetName()), recs...)
}
