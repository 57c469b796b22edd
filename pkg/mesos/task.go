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

package mesos

// TaskID uniquely identifies a task instance.
type TaskID struct {
	Value *string
}

func (t *TaskID) GetValue() string {
	if t == nil || t.Value == nil {
		return ""
	}
	return *t.Value
}

// ExecutorID uniquely identifies an executor instance on an agent.
type ExecutorID struct {
	Value *string
}

func (e *ExecutorID) GetValue() string {
	if e == nil || e.Value == nil {
		return ""
	}
	return *e.Value
}

// Environment_Variable is a single NAME=value pair passed to a task.
type Environment_Variable struct {
	Name  *string
	Value *string
}

func (v *Environment_Variable) GetName() string {
	if v == nil || v.Name == nil {
		return ""
	}
	return *v.Name
}

func (v *Environment_Variable) GetValue() string {
	if v == nil || v.Value == nil {
		return ""
	}
	return *v.Value
}

// Environment is the full set of environment variables for a task.
type Environment struct {
	Variables []*Environment_Variable
}

func (e *Environment) GetVariables() []*Environment_Variable {
	if e == nil {
		return nil
	}
	return e.Variables
}

// With returns a copy of Environment with name=value appended.
func (e *Environment) With(name, value string) *Environment {
	out := &Environment{}
	if e != nil {
		out.Variables = append(out.Variables, e.Variables...)
	}
	n, v := name, value
	out.Variables = append(out.Variables, &Environment_Variable{Name: &n, Value: &v})
	return out
}

// CommandInfo is the shell command and environment used to launch a task.
type CommandInfo struct {
	Value       *string
	Environment *Environment
}

func (c *CommandInfo) GetValue() string {
	if c == nil || c.Value == nil {
		return ""
	}
	return *c.Value
}

func (c *CommandInfo) GetEnvironment() *Environment {
	if c == nil {
		return nil
	}
	return c.Environment
}

// ExecutorInfo identifies the executor a pod's tasks share.
type ExecutorInfo struct {
	ExecutorID *ExecutorID
	Name       *string
	Resources  []*Resource
}

func (e *ExecutorInfo) GetExecutorId() *ExecutorID {
	if e == nil {
		return nil
	}
	return e.ExecutorID
}

func (e *ExecutorInfo) GetResourcesList() []*Resource {
	if e == nil {
		return nil
	}
	return e.Resources
}

// ContainerInfo_Type distinguishes MESOS containers (the only kind this
// core issues volumes for).
type ContainerInfo_Type int32

const (
	ContainerInfo_MESOS ContainerInfo_Type = iota
)

// ContainerInfo carries the volumes attached to a task's container. An
// executor-level volume must be added to every sibling task's ContainerInfo
// for it to be visible inside each task's sandbox.
type ContainerInfo struct {
	Type    *ContainerInfo_Type
	Volumes []*Volume
}

func (c *ContainerInfo) HasType() bool {
	return c != nil && c.Type != nil
}

func (c *ContainerInfo) GetVolumes() []*Volume {
	if c == nil {
		return nil
	}
	return c.Volumes
}

// TaskInfo is the protocol-level task record persisted by the state store
// and eventually sent to the master in a LAUNCH operation.
type TaskInfo struct {
	Name          *string
	TaskID        *TaskID
	Executor      *ExecutorInfo
	Resources     []*Resource
	Command       *CommandInfo
	Container     *ContainerInfo
	Labels        *Labels
}

func (t *TaskInfo) GetName() string {
	if t == nil || t.Name == nil {
		return ""
	}
	return *t.Name
}

func (t *TaskInfo) GetTaskId() *TaskID {
	if t == nil {
		return nil
	}
	return t.TaskID
}

func (t *TaskInfo) GetExecutor() *ExecutorInfo {
	if t == nil {
		return nil
	}
	return t.Executor
}

func (t *TaskInfo) GetResourcesList() []*Resource {
	if t == nil {
		return nil
	}
	return t.Resources
}

func (t *TaskInfo) GetCommand() *CommandInfo {
	if t == nil {
		return nil
	}
	return t.Command
}

func (t *TaskInfo) GetContainer() *ContainerInfo {
	if t == nil {
		return nil
	}
	return t.Container
}

// TaskState is the lifecycle state of a launched task, as reported by the
// master in a TaskStatus update.
type TaskState int32

const (
	TaskState_TASK_STAGING TaskState = iota
	TaskState_TASK_STARTING
	TaskState_TASK_RUNNING
	TaskState_TASK_KILLING
	TaskState_TASK_FINISHED
	TaskState_TASK_FAILED
	TaskState_TASK_KILLED
	TaskState_TASK_ERROR
	TaskState_TASK_LOST
)

// TaskStatus is the latest known status of a task, as tracked by the state
// store.
type TaskStatus struct {
	TaskID *TaskID
	State  *TaskState
}

func (s *TaskStatus) GetState() TaskState {
	if s == nil || s.State == nil {
		return TaskState_TASK_STAGING
	}
	return *s.State
}
