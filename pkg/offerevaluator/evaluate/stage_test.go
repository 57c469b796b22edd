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
)

type fakeStage struct {
	name    string
	outcome Outcome
	ran     *[]string
}

func (f fakeStage) Name() string { return f.name }

func (f fakeStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	*f.ran = append(*f.ran, f.name)
	return f.outcome
}

func TestPipelineRunsEveryStageRegardlessOfEarlierFailure(t *testing.T) {
	var ran []string
	pipeline := Pipeline{
		fakeStage{name: "a", outcome: Fail("no"), ran: &ran},
		fakeStage{name: "b", outcome: Pass("ok"), ran: &ran},
	}

	pool := resourcepool.New(&mesos.Offer{})
	outcomes := pipeline.Run(pool, nil)

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Passing)
	assert.True(t, outcomes[1].Passing)
	assert.Equal(t, []string{"a", "b"}, ran)
}
