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
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// PodInfoBuilder accumulates the in-progress task and executor protocol
// messages as stages contribute reservations, volumes, ports and
// environment. One builder is constructed per pod, per
// offer under evaluation, and discarded if that offer is rejected.
type PodInfoBuilder struct {
	pod            specification.PodInstance
	serviceName    string
	targetConfigID string

	executorID *mesos.ExecutorID // set only when rebinding an existing pod's executor

	taskOrder []string
	tasks     map[string]*mesos.TaskInfo
	executor  *mesos.ExecutorInfo

	// ports records the concrete port number assigned to each named
	// PortSpec/NamedVIPSpec, readable through Port. The port stages write
	// the matching environment variable themselves via SetEnv.
	ports map[string]uint32
}

// NewPodInfoBuilder constructs an empty builder for one pod instance.
// existingExecutorID is non-nil only on the existing-pod path, where the
// executor was already created on a previous cycle.
func NewPodInfoBuilder(pod specification.PodInstance, serviceName, targetConfigID string, existingExecutorID *mesos.ExecutorID) *PodInfoBuilder {
	b := &PodInfoBuilder{
		pod:            pod,
		serviceName:    serviceName,
		targetConfigID: targetConfigID,
		executorID:     existingExecutorID,
		tasks:          map[string]*mesos.TaskInfo{},
		ports:          map[string]uint32{},
	}
	b.executor = &mesos.ExecutorInfo{ExecutorID: existingExecutorID}
	return b
}

func (b *PodInfoBuilder) taskInfo(taskName string) *mesos.TaskInfo {
	t, ok := b.tasks[taskName]
	if !ok {
		name := specification.TaskInstanceName(b.pod, taskName)
		containerType := mesos.ContainerInfo_MESOS
		t = &mesos.TaskInfo{
			Name:      &name,
			TaskID:    &mesos.TaskID{Value: &name},
			Container: &mesos.ContainerInfo{Type: &containerType},
		}
		b.tasks[taskName] = t
		b.taskOrder = append(b.taskOrder, taskName)
	}
	return t
}

// SetProtos appends resource to a task's resource list, or to the shared
// executor's resource list when taskName is empty (an executor-level
// resource, e.g. a shared MOUNT volume).
func (b *PodInfoBuilder) SetProtos(taskName string, resource *mesos.Resource) {
	if taskName == "" {
		b.executor.Resources = append(b.executor.Resources, resource)
		return
	}
	t := b.taskInfo(taskName)
	t.Resources = append(t.Resources, resource)
}

// SetPort records the concrete port number chosen for a named port spec.
func (b *PodInfoBuilder) SetPort(specName string, port uint32) {
	b.ports[specName] = port
}

// Port returns the concrete port number assigned to a named port spec, if
// one has been assigned yet.
func (b *PodInfoBuilder) Port(specName string) (uint32, bool) {
	p, ok := b.ports[specName]
	return p, ok
}

// AddVolumeToAllContainers adds an executor-level volume to every task's
// ContainerInfo so sibling tasks can see it in their sandbox.
func (b *PodInfoBuilder) AddVolumeToAllContainers(v *mesos.Volume) {
	for _, taskName := range b.pod.TaskNames() {
		t := b.taskInfo(taskName)
		t.Container.Volumes = append(t.Container.Volumes, v)
	}
}

// TaskNames returns every task name declared on the pod definition, in
// declaration order — the same list AddVolumeToAllContainers walks.
func (b *PodInfoBuilder) TaskNames() []string {
	return b.pod.TaskNames()
}

// SetCommand assigns a task's CommandInfo, replacing any environment
// variables recorded so far via SetEnv.
func (b *PodInfoBuilder) SetCommand(taskName string, cmd *mesos.CommandInfo) {
	b.taskInfo(taskName).Command = cmd
}

// SetEnv appends a NAME=value pair to a task's command environment,
// creating an empty CommandInfo if none has been set yet.
func (b *PodInfoBuilder) SetEnv(taskName, name, value string) {
	t := b.taskInfo(taskName)
	if t.Command == nil {
		t.Command = &mesos.CommandInfo{}
	}
	t.Command.Environment = t.Command.GetEnvironment().With(name, value)
}

// ExecutorInfo returns the shared executor message being built.
func (b *PodInfoBuilder) ExecutorInfo() *mesos.ExecutorInfo { return b.executor }

// TaskInfoFor returns the in-progress TaskInfo for a task name, creating it
// if this is the first stage to touch that task.
func (b *PodInfoBuilder) TaskInfoFor(taskName string) *mesos.TaskInfo {
	return b.taskInfo(taskName)
}

// Build finalizes and returns every task built so far, in the order each
// task was first touched by a stage, each carrying the shared ExecutorInfo.
func (b *PodInfoBuilder) Build() []*mesos.TaskInfo {
	out := make([]*mesos.TaskInfo, 0, len(b.taskOrder))
	for _, name := range b.taskOrder {
		t := b.tasks[name]
		t.Executor = b.executor
		out = append(out, t)
	}
	return out
}
