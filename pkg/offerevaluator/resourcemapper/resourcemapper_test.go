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

package resourcemapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

func strPtr(s string) *string { return &s }

func TestMapMatchesByName(t *testing.T) {
	set := specification.ResourceSet{
		Resources: []specification.ResourceSpec{{Name: "cpus"}},
	}
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{Name: strPtr("cpus")},
		},
	}

	result := Map(set, persisted)
	require.Len(t, result.Matched, 1)
	assert.Empty(t, result.Orphans)
}

func TestMapStaticPortMatchesByRange(t *testing.T) {
	set := specification.ResourceSet{
		Ports: []specification.PortSpec{
			{ResourceSpec: specification.ResourceSpec{Name: "api"}, Port: 4040},
		},
	}
	begin, end := uint64(4040), uint64(4040)
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{Name: strPtr("ports"), Ranges: &mesos.Value_Ranges{Range: []*mesos.Value_Range{{Begin: &begin, End: &end}}}},
		},
	}

	result := Map(set, persisted)
	require.Len(t, result.Matched, 1)
}

func TestMapStaticPortRejectsWrongRange(t *testing.T) {
	set := specification.ResourceSet{
		Ports: []specification.PortSpec{
			{ResourceSpec: specification.ResourceSpec{Name: "api"}, Port: 5000},
		},
	}
	begin, end := uint64(4040), uint64(4040)
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{Name: strPtr("ports"), Ranges: &mesos.Value_Ranges{Range: []*mesos.Value_Range{{Begin: &begin, End: &end}}}},
		},
	}

	result := Map(set, persisted)
	assert.Empty(t, result.Matched)
	require.Len(t, result.Orphans, 1)
}

func TestMapDynamicPortMatchesByLabelNotResourceName(t *testing.T) {
	set := specification.ResourceSet{
		Ports: []specification.PortSpec{
			{ResourceSpec: specification.ResourceSpec{Name: "api"}},
		},
	}
	begin, end := uint64(30000), uint64(30000)
	role := "web"
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{
				Name:   strPtr("ports"),
				Role:   &role,
				Ranges: &mesos.Value_Ranges{Range: []*mesos.Value_Range{{Begin: &begin, End: &end}}},
				Reservations: []*mesos.Resource_ReservationInfo{
					{
						Role:   &role,
						Labels: (&mesos.Labels{}).With("resource_id", "res-1").With("dynamic_port", "api"),
					},
				},
			},
		},
	}

	result := Map(set, persisted)
	require.Len(t, result.Matched, 1)
	assert.Empty(t, result.Orphans)
	assert.Equal(t, "res-1", result.Matched[0].ResourceID)
}

func TestMapDynamicPortWithDifferentLogicalNameIsOrphaned(t *testing.T) {
	set := specification.ResourceSet{
		Ports: []specification.PortSpec{
			{ResourceSpec: specification.ResourceSpec{Name: "admin"}},
		},
	}
	begin, end := uint64(30000), uint64(30000)
	role := "web"
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{
				Name:   strPtr("ports"),
				Role:   &role,
				Ranges: &mesos.Value_Ranges{Range: []*mesos.Value_Range{{Begin: &begin, End: &end}}},
				Reservations: []*mesos.Resource_ReservationInfo{
					{
						Role:   &role,
						Labels: (&mesos.Labels{}).With("resource_id", "res-1").With("dynamic_port", "api"),
					},
				},
			},
		},
	}

	result := Map(set, persisted)
	assert.Empty(t, result.Matched)
	require.Len(t, result.Orphans, 1)
}

func TestMapVolumeMatchesByContainerPath(t *testing.T) {
	set := specification.ResourceSet{
		Volumes: []specification.VolumeSpec{
			{ResourceSpec: specification.ResourceSpec{Name: "disk"}, ContainerPath: "/data"},
		},
	}
	persistenceID := "pv-1"
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{
				Name: strPtr("disk"),
				Disk: &mesos.Resource_DiskInfo{
					Volume:      &mesos.Volume{ContainerPath: strPtr("/data")},
					Persistence: &mesos.Resource_DiskInfo_Persistence{ID: &persistenceID},
				},
			},
		},
	}

	result := Map(set, persisted)
	require.Len(t, result.Matched, 1)
	assert.Equal(t, persistenceID, result.Matched[0].Persistence)
}

func TestMapOrphansUnmatchedPersistentVolume(t *testing.T) {
	set := specification.ResourceSet{}
	persistenceID := "pv-1"
	persisted := &mesos.TaskInfo{
		Resources: []*mesos.Resource{
			{
				Name: strPtr("disk"),
				Disk: &mesos.Resource_DiskInfo{
					Persistence: &mesos.Resource_DiskInfo_Persistence{ID: &persistenceID},
				},
			},
		},
	}

	result := Map(set, persisted)
	require.Len(t, result.Orphans, 1)
	assert.True(t, result.Orphans[0].IsPersistent)
}
