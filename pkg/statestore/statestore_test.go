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

package statestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

func TestMemoryStoreFetchTasks(t *testing.T) {
	store := NewMemoryStore()
	name := "node-0-server"
	store.PutTask(name, &mesos.TaskInfo{Name: &name})

	tasks, err := store.FetchTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, name, tasks[0].GetName())
}

func TestMemoryStoreFetchStatusNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.FetchStatus("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreMarkFailed(t *testing.T) {
	store := NewMemoryStore()
	failed, err := store.IsLabeledAsFailed("node-0-server")
	require.NoError(t, err)
	assert.False(t, failed)

	store.MarkFailed("node-0-server", true)
	failed, err = store.IsLabeledAsFailed("node-0-server")
	require.NoError(t, err)
	assert.True(t, failed)
}
