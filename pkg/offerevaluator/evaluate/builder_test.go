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
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

func testPod() specification.PodInstance {
	return specification.PodInstance{
		Pod: specification.Pod{
			Name: "node",
			Tasks: []specification.TaskSpec{
				{Name: "server"},
				{Name: "sidecar"},
			},
		},
	}
}

func TestPodInfoBuilderSetProtosCreatesTask(t *testing.T) {
	b := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)
	name := "cpus"
	b.SetProtos("server", &mesos.Resource{Name: &name})

	tasks := b.Build()
	require.Len(t, tasks, 1)
	assert.Equal(t, "node-0-server", tasks[0].GetName())
	require.Len(t, tasks[0].GetResourcesList(), 1)
}

func TestPodInfoBuilderSetProtosEmptyTaskNameGoesToExecutor(t *testing.T) {
	b := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)
	name := "disk"
	b.SetProtos("", &mesos.Resource{Name: &name})

	require.Len(t, b.ExecutorInfo().GetResourcesList(), 1)
}

func TestPodInfoBuilderPortRoundTrip(t *testing.T) {
	b := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)
	_, ok := b.Port("api")
	assert.False(t, ok)

	b.SetPort("api", 4040)
	p, ok := b.Port("api")
	require.True(t, ok)
	assert.Equal(t, uint32(4040), p)
}

func TestPodInfoBuilderAddVolumeToAllContainers(t *testing.T) {
	b := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)
	path := "/data"
	b.AddVolumeToAllContainers(&mesos.Volume{ContainerPath: &path})

	for _, taskName := range b.TaskNames() {
		task := b.TaskInfoFor(taskName)
		require.Len(t, task.Container.Volumes, 1)
	}
}

func TestPodInfoBuilderSetEnvCreatesCommand(t *testing.T) {
	b := NewPodInfoBuilder(testPod(), "svc", "target-1", nil)
	b.SetEnv("server", "PORT_API", "4040")

	tasks := b.Build()
	found := false
	for _, v := range tasks[0].GetCommand().GetEnvironment().GetVariables() {
		if v.GetName() == "PORT_API" && v.GetValue() == "4040" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPodInfoBuilderExistingExecutorIDCarriedThrough(t *testing.T) {
	execID := &mesos.ExecutorID{Value: strPtrBuilder("exec-1")}
	b := NewPodInfoBuilder(testPod(), "svc", "target-1", execID)
	assert.Equal(t, execID, b.ExecutorInfo().GetExecutorId())
}

func strPtrBuilder(s string) *string { return &s }
