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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoRequirementSingleTaskWithOnePort(t *testing.T) {
	req := demoRequirement("web", "svc-principal")

	require.Len(t, req.PodInstance.Pod.Tasks, 1)
	task := req.PodInstance.Pod.Tasks[0]
	assert.Equal(t, "server", task.Name)
	assert.Equal(t, "server-resources", task.ResourceSet.ID)
	require.Len(t, task.ResourceSet.Resources, 2)
	require.Len(t, task.ResourceSet.Ports, 1)

	for _, r := range task.ResourceSet.Resources {
		assert.Equal(t, "web", r.Role)
		assert.Equal(t, "svc-principal", r.Principal)
	}
	assert.True(t, task.ResourceSet.Ports[0].IsDynamic())
}

func TestDemoRequirementMarksTaskForLaunch(t *testing.T) {
	req := demoRequirement("web", "svc-principal")
	assert.True(t, req.TasksToLaunch["server"])
	assert.True(t, req.ShouldLaunch("server"))
}
