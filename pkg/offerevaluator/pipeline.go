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

package offerevaluator

import (
	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/evaluate"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcemapper"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// orderedSpecs returns a ResourceSet's non-volume specs ordered
// staticPorts, dynamicPorts, everythingElse.
func orderedSpecs(rs specification.ResourceSet) []specification.AnySpec {
	var staticPorts, dynamicPorts, rest []specification.AnySpec

	for i := range rs.Ports {
		p := &rs.Ports[i]
		if p.IsDynamic() {
			dynamicPorts = append(dynamicPorts, specification.AnySpec{Port: p})
		} else {
			staticPorts = append(staticPorts, specification.AnySpec{Port: p})
		}
	}
	for i := range rs.VIPs {
		v := &rs.VIPs[i]
		if v.IsDynamic() {
			dynamicPorts = append(dynamicPorts, specification.AnySpec{VIP: v})
		} else {
			staticPorts = append(staticPorts, specification.AnySpec{VIP: v})
		}
	}
	for i := range rs.Resources {
		rest = append(rest, specification.AnySpec{Resource: &rs.Resources[i]})
	}

	ordered := make([]specification.AnySpec, 0, len(staticPorts)+len(dynamicPorts)+len(rest))
	ordered = append(ordered, staticPorts...)
	ordered = append(ordered, dynamicPorts...)
	ordered = append(ordered, rest...)
	return ordered
}

// principalFor returns a spec's own principal, falling back to the
// framework-wide default when the spec did not name one.
func principalFor(specPrincipal, defaultPrincipal string) string {
	if specPrincipal != "" {
		return specPrincipal
	}
	return defaultPrincipal
}

func newSpecStage(taskName string, spec specification.AnySpec, defaultPrincipal string, gen uuid.Generator) evaluate.Stage {
	switch {
	case spec.VIP != nil:
		return evaluate.NamedVIPEvaluationStage{
			TaskName:  taskName,
			Spec:      *spec.VIP,
			Principal: principalFor(spec.VIP.Principal, defaultPrincipal),
			Generator: gen,
		}
	case spec.Port != nil:
		return evaluate.PortEvaluationStage{
			TaskName:  taskName,
			Spec:      *spec.Port,
			Principal: principalFor(spec.Port.Principal, defaultPrincipal),
			Generator: gen,
		}
	default:
		return evaluate.ResourceEvaluationStage{
			TaskName:  taskName,
			Spec:      *spec.Resource,
			Principal: principalFor(spec.Resource.Principal, defaultPrincipal),
			Generator: gen,
		}
	}
}

func existingSpecStage(taskName string, spec specification.AnySpec, resourceID, defaultPrincipal string, gen uuid.Generator) evaluate.Stage {
	switch {
	case spec.VIP != nil:
		return evaluate.NamedVIPEvaluationStage{
			TaskName:   taskName,
			Spec:       *spec.VIP,
			ResourceID: resourceID,
			Principal:  principalFor(spec.VIP.Principal, defaultPrincipal),
			Generator:  gen,
		}
	case spec.Port != nil:
		return evaluate.PortEvaluationStage{
			TaskName:   taskName,
			Spec:       *spec.Port,
			ResourceID: resourceID,
			Principal:  principalFor(spec.Port.Principal, defaultPrincipal),
			Generator:  gen,
		}
	default:
		return evaluate.ResourceEvaluationStage{
			TaskName:   taskName,
			Spec:       *spec.Resource,
			ResourceID: resourceID,
			Principal:  principalFor(spec.Resource.Principal, defaultPrincipal),
			Generator:  gen,
		}
	}
}

// sharedResourceSetIDs returns the set of ResourceSet ids referenced by
// more than one task in the pod. A volume drawn from a shared resource set
// is executor-level: built once and attached to every sibling task's
// container.
func sharedResourceSetIDs(pod specification.PodInstance) map[string]bool {
	counts := map[string]int{}
	for _, t := range pod.Pod.Tasks {
		if t.ResourceSet.ID == "" {
			continue
		}
		counts[t.ResourceSet.ID]++
	}
	shared := map[string]bool{}
	for id, n := range counts {
		if n > 1 {
			shared[id] = true
		}
	}
	return shared
}

// buildNewPipeline builds the pipeline for a pod with no prior reservations
//: every spec reserves fresh.
func (e *OfferEvaluator) buildNewPipeline(req specification.PodInstanceRequirement) evaluate.Pipeline {
	shared := sharedResourceSetIDs(req.PodInstance)
	seenSharedVolumes := map[string]bool{}

	var stages evaluate.Pipeline
	if rule := req.PodInstance.Pod.PlacementRule; rule != nil {
		stages = append(stages, evaluate.PlacementRuleStage{Rule: rule, AllTasks: e.allPersistedTasks()})
	}

	for _, task := range req.PodInstance.Pod.Tasks {
		for _, spec := range orderedSpecs(task.ResourceSet) {
			stages = append(stages, newSpecStage(task.Name, spec, e.config.Principal, e.uuidGen))
		}
		for i := range task.ResourceSet.Volumes {
			vol := task.ResourceSet.Volumes[i]
			taskName := task.Name
			if shared[task.ResourceSet.ID] {
				key := task.ResourceSet.ID + "|" + vol.ContainerPath
				if seenSharedVolumes[key] {
					continue
				}
				seenSharedVolumes[key] = true
				taskName = ""
			}
			stages = append(stages, evaluate.VolumeEvaluationStage{
				TaskName:  taskName,
				Spec:      vol,
				Principal: principalFor(vol.Principal, e.config.Principal),
				Generator: e.uuidGen,
			})
		}
		stages = append(stages, evaluate.NewLaunchStage(task.Name, req, task.Command))
	}
	return stages
}

// buildExistingPipeline builds the pipeline for a pod with at least one
// previously reserved resource, routing
// each task's persisted resources through the resource mapper.
func (e *OfferEvaluator) buildExistingPipeline(req specification.PodInstanceRequirement, persisted map[string]*mesos.TaskInfo) evaluate.Pipeline {
	shared := sharedResourceSetIDs(req.PodInstance)
	seenSharedVolumes := map[string]bool{}

	var stages evaluate.Pipeline
	if rule := req.PodInstance.Pod.PlacementRule; rule != nil {
		stages = append(stages, evaluate.PlacementRuleStage{Rule: rule, AllTasks: e.allPersistedTasks()})
	}

	// UNRESERVEs (and DESTROYs) for every task go first, so a caller
	// reconciling recommendations in order always frees orphaned resources
	// before anything new is reserved against the same offer.
	mappedByTask := make([]resourcemapper.Result, len(req.PodInstance.Pod.Tasks))
	for i, task := range req.PodInstance.Pod.Tasks {
		instanceName := specification.TaskInstanceName(req.PodInstance, task.Name)
		mappedByTask[i] = resourcemapper.Map(task.ResourceSet, persisted[instanceName])
		for _, orphan := range mappedByTask[i].Orphans {
			stages = append(stages, evaluate.UnreserveEvaluationStage{Orphan: orphan.Resource})
		}
	}

	for i, task := range req.PodInstance.Pod.Tasks {
		mapped := mappedByTask[i]
		matchedByName := map[string]resourcemapper.Match{}
		matchedVolumeByPath := map[string]resourcemapper.Match{}
		for _, m := range mapped.Matched {
			if m.Volume != nil {
				matchedVolumeByPath[m.Volume.ContainerPath] = m
				continue
			}
			matchedByName[m.Spec.Base().Name] = m
		}

		for _, spec := range orderedSpecs(task.ResourceSet) {
			base := spec.Base()
			if m, ok := matchedByName[base.Name]; ok {
				stages = append(stages, existingSpecStage(task.Name, spec, m.ResourceID, e.config.Principal, e.uuidGen))
			} else {
				stages = append(stages, newSpecStage(task.Name, spec, e.config.Principal, e.uuidGen))
			}
		}

		for i := range task.ResourceSet.Volumes {
			vol := task.ResourceSet.Volumes[i]
			taskName := task.Name
			if shared[task.ResourceSet.ID] {
				key := task.ResourceSet.ID + "|" + vol.ContainerPath
				if seenSharedVolumes[key] {
					continue
				}
				seenSharedVolumes[key] = true
				taskName = ""
			}
			if m, ok := matchedVolumeByPath[vol.ContainerPath]; ok {
				stages = append(stages, evaluate.VolumeEvaluationStage{
					TaskName:      taskName,
					Spec:          vol,
					ResourceID:    m.ResourceID,
					PersistenceID: m.Persistence,
					Principal:     principalFor(vol.Principal, e.config.Principal),
					Generator:     e.uuidGen,
				})
			} else {
				stages = append(stages, evaluate.VolumeEvaluationStage{
					TaskName:  taskName,
					Spec:      vol,
					Principal: principalFor(vol.Principal, e.config.Principal),
					Generator: e.uuidGen,
				})
			}
		}

		stages = append(stages, evaluate.NewLaunchStage(task.Name, req, task.Command))
	}
	return stages
}
