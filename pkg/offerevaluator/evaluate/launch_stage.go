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
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// LaunchEvaluationStage finalizes one task's TaskInfo from the builder and,
// unless the pod requirement excludes this task from the current launch
// batch, emits a LAUNCH recommendation. It always runs last for a given
// task: resources are retained on the pool/builder either
// way so a partially-launched pod still holds its reservations.
type LaunchEvaluationStage struct {
	TaskName     string
	ShouldLaunch bool
	Command      *mesos.CommandInfo
}

// Name implements Stage.
func (s LaunchEvaluationStage) Name() string {
	return fmt.Sprintf("LaunchEvaluationStage(%s)", s.TaskName)
}

// Evaluate implements Stage.
func (s LaunchEvaluationStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	t := builder.TaskInfoFor(s.TaskName)
	if s.Command != nil {
		if t.Command == nil {
			builder.SetCommand(s.TaskName, s.Command)
		} else {
			// An earlier stage (e.g. a port setting PORT_<NAME>) already
			// created a CommandInfo to carry the environment; merge the
			// configured value and environment onto it instead of
			// overwriting either.
			t.Command.Value = s.Command.Value
			for _, v := range s.Command.GetEnvironment().GetVariables() {
				t.Command.Environment = t.Command.GetEnvironment().With(v.GetName(), v.GetValue())
			}
		}
		t = builder.TaskInfoFor(s.TaskName)
	}

	if !s.ShouldLaunch {
		return Pass(fmt.Sprintf("task %s prepared but not in this cycle's launch set", s.TaskName))
	}

	t.Executor = builder.ExecutorInfo()
	return Pass(fmt.Sprintf("task %s ready to launch", s.TaskName), recommendation.NewLaunch(pool.Offer().GetId(), t))
}

// NewLaunchStage builds a LaunchEvaluationStage for one task in a pod
// requirement.
func NewLaunchStage(taskName string, req specification.PodInstanceRequirement, command *mesos.CommandInfo) LaunchEvaluationStage {
	return LaunchEvaluationStage{
		TaskName:     taskName,
		ShouldLaunch: req.ShouldLaunch(taskName),
		Command:      command,
	}
}
