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

// Package statestore declares the persisted task-record abstraction the
// orchestrator reads from and provides an in-memory fake for tests.
package statestore

import (
	"github.com/pkg/errors"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

// ErrNotFound is returned by FetchStatus when no status has been recorded
// for a task name.
var ErrNotFound = errors.New("statestore: not found")

// StateStore is the read side of the key-value task store the
// orchestrator consumes; it declares no write operations. Production implementations back this with ZooKeeper or etcd;
// this core never depends on a concrete backend.
type StateStore interface {
	// FetchTasks returns every persisted task record for the service.
	FetchTasks() ([]*mesos.TaskInfo, error)
	// FetchStatus returns the most recently recorded status for a task
	// name, or ErrNotFound if none has ever been recorded.
	FetchStatus(taskName string) (*mesos.TaskStatus, error)
	// IsLabeledAsFailed reports whether the task has been marked
	// permanently failed by the external recovery path.
	IsLabeledAsFailed(taskName string) (bool, error)
}

// MemoryStore is an in-memory StateStore, used by tests and by the demo
// command in place of a real backend.
type MemoryStore struct {
	tasks    map[string]*mesos.TaskInfo
	statuses map[string]*mesos.TaskStatus
	failed   map[string]bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:    map[string]*mesos.TaskInfo{},
		statuses: map[string]*mesos.TaskStatus{},
		failed:   map[string]bool{},
	}
}

// PutTask records (or replaces) a task's persisted TaskInfo.
func (m *MemoryStore) PutTask(taskName string, info *mesos.TaskInfo) {
	m.tasks[taskName] = info
}

// PutStatus records (or replaces) a task's most recent status.
func (m *MemoryStore) PutStatus(taskName string, status *mesos.TaskStatus) {
	m.statuses[taskName] = status
}

// MarkFailed flags a task as permanently failed.
func (m *MemoryStore) MarkFailed(taskName string, failed bool) {
	m.failed[taskName] = failed
}

// FetchTasks implements StateStore.
func (m *MemoryStore) FetchTasks() ([]*mesos.TaskInfo, error) {
	out := make([]*mesos.TaskInfo, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

// FetchStatus implements StateStore.
func (m *MemoryStore) FetchStatus(taskName string) (*mesos.TaskStatus, error) {
	s, ok := m.statuses[taskName]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "task %s", taskName)
	}
	return s, nil
}

// IsLabeledAsFailed implements StateStore.
func (m *MemoryStore) IsLabeledAsFailed(taskName string) (bool, error) {
	return m.failed[taskName], nil
}
