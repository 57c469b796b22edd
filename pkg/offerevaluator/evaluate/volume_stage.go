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
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// VolumeEvaluationStage handles ROOT, PATH and MOUNT persistent volumes.
// ROOT and PATH volumes are divisible disk quantity out of
// the role's merged pool; MOUNT volumes are atomic disks picked whole from
// the offer. TaskName == "" marks an executor-level volume shared by every
// sibling task in the pod.
type VolumeEvaluationStage struct {
	TaskName      string
	Spec          specification.VolumeSpec
	ResourceID    string // non-empty on the existing-pod path
	PersistenceID string // must be set together with ResourceID
	Principal     string
	Generator     uuid.Generator
}

// Name implements Stage.
func (s VolumeEvaluationStage) Name() string {
	return fmt.Sprintf("VolumeEvaluationStage(%s)", s.Spec.ContainerPath)
}

// Evaluate implements Stage.
func (s VolumeEvaluationStage) Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	if s.Spec.Type == specification.VolumeMOUNT {
		return s.evaluateMount(pool, builder)
	}
	return s.evaluateDivisible(pool, builder)
}

func (s VolumeEvaluationStage) evaluateDivisible(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	if s.ResourceID != "" {
		req := resourcepool.Expects(s.ResourceID, mesosresource.NameDisk, s.Spec.Value)
		found, ok := pool.Consume(req)
		if !ok {
			return Fail(fmt.Sprintf("failed to find reserved volume disk with id %s", s.ResourceID))
		}
		final := attachDisk(found.Resource(), diskInfo(s.PersistenceID, s.Principal, s.Spec.ContainerPath, nil))
		builder.SetProtos(s.TaskName, final)
		if s.TaskName == "" {
			builder.AddVolumeToAllContainers(final.GetDisk().GetVolume())
		}
		return Pass(fmt.Sprintf("reused persistent volume at %s", s.Spec.ContainerPath))
	}

	req := resourcepool.ReserveDivisible(mesosresource.NameDisk, s.Spec.Role, s.Spec.Value)
	found, ok := pool.Consume(req)
	if !ok {
		return Fail(fmt.Sprintf("no unreserved disk available in role %s for volume at %s", s.Spec.Role, s.Spec.ContainerPath))
	}
	resourceID := s.Generator.New()
	reserved := withReservation(found.Resource(), s.Spec.Role, s.Principal, resourceID)
	persistenceID := s.Generator.New()
	final := attachDisk(reserved, diskInfo(persistenceID, s.Principal, s.Spec.ContainerPath, nil))

	builder.SetProtos(s.TaskName, final)
	if s.TaskName == "" {
		builder.AddVolumeToAllContainers(final.GetDisk().GetVolume())
	}
	offerID := pool.Offer().GetId()
	return Pass(fmt.Sprintf("created persistent volume at %s", s.Spec.ContainerPath),
		recommendation.NewReserve(offerID, reserved),
		recommendation.NewCreate(offerID, final))
}

func (s VolumeEvaluationStage) evaluateMount(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome {
	if s.ResourceID != "" {
		req := resourcepool.Expects(s.ResourceID, mesosresource.NameDisk, s.Spec.Value)
		found, ok := pool.Consume(req)
		if !ok {
			return Fail(fmt.Sprintf("failed to find reserved MOUNT disk with id %s", s.ResourceID))
		}
		final := attachDisk(found.Resource(), diskInfo(s.PersistenceID, s.Principal, s.Spec.ContainerPath, mountSource()))
		builder.SetProtos(s.TaskName, final)
		if s.TaskName == "" {
			builder.AddVolumeToAllContainers(final.GetDisk().GetVolume())
		}
		return Pass(fmt.Sprintf("reused MOUNT volume at %s", s.Spec.ContainerPath))
	}

	req := resourcepool.ReserveAtomic(mesosresource.NameDisk, s.Spec.Value)
	found, ok := pool.Consume(req)
	if !ok {
		return Fail(fmt.Sprintf("offered quantity of MOUNT disks insufficient for volume at %s", s.Spec.ContainerPath))
	}
	resourceID := s.Generator.New()
	reserved := withReservation(found.Resource(), s.Spec.Role, s.Principal, resourceID)
	persistenceID := s.Generator.New()
	final := attachDisk(reserved, diskInfo(persistenceID, s.Principal, s.Spec.ContainerPath, mountSource()))

	builder.SetProtos(s.TaskName, final)
	if s.TaskName == "" {
		builder.AddVolumeToAllContainers(final.GetDisk().GetVolume())
	}
	offerID := pool.Offer().GetId()
	return Pass(fmt.Sprintf("reserved and created MOUNT volume at %s", s.Spec.ContainerPath),
		recommendation.NewReserve(offerID, reserved),
		recommendation.NewCreate(offerID, final))
}

func mountSource() *mesos.Resource_DiskInfo_Source {
	t := mesos.Resource_DiskInfo_Source_MOUNT
	return &mesos.Resource_DiskInfo_Source{Type: &t}
}

// diskInfo builds the persistence + volume metadata every persistent
// resource carries: a SANDBOX_PATH/PARENT volume mounted at
// containerPath, RW, plus the given source (nil for an implicit ROOT
// disk).
func diskInfo(persistenceID, principal, containerPath string, source *mesos.Resource_DiskInfo_Source) *mesos.Resource_DiskInfo {
	mode := mesos.Volume_RW
	sourceType := mesos.Volume_Source_SANDBOX_PATH
	sandboxType := mesos.Volume_Source_SandboxPath_PARENT
	path := containerPath
	vol := &mesos.Volume{
		Mode:          &mode,
		ContainerPath: &containerPath,
		Source: &mesos.Volume_Source{
			Type:        &sourceType,
			SandboxPath: &mesos.Volume_Source_SandboxPath{Type: &sandboxType, Path: &path},
		},
	}
	id := persistenceID
	pr := principal
	return &mesos.Resource_DiskInfo{
		Persistence: &mesos.Resource_DiskInfo_Persistence{ID: &id, Principal: &pr},
		Volume:      vol,
		Source:      source,
	}
}

func attachDisk(resource *mesos.Resource, disk *mesos.Resource_DiskInfo) *mesos.Resource {
	clone := resource.Clone()
	clone.Disk = disk
	return clone
}
