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

// Package specification is the desired-state description the offer
// evaluator matches offers against: pods, tasks, resource sets and the
// individual resource/volume/port specs within them. It has no dependency
// on the evaluation packages themselves, keeping this wire-facing data
// shape out of the evaluation code that consumes it.
package specification

import (
	"strconv"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

// ResourceSpec is the desired-state description of a single scalar/ranges
// resource (cpus, mem, disk-ROOT scalar quantity, or a plain named
// resource). PortSpec, NamedVIPSpec and VolumeSpec extend the same base
// fields with their own subtype data instead of subclassing it, avoiding
// a deep inheritance hierarchy.
type ResourceSpec struct {
	Name      string
	Value     *mesos.Value
	Role      string
	Principal string
}

// PortSpec describes a single named port. Port == 0 means "assign any
// available port dynamically".
type PortSpec struct {
	ResourceSpec
	Port    uint32
	EnvName string
}

// IsDynamic reports whether this port must be picked from the offer rather
// than matched at a fixed number.
func (p PortSpec) IsDynamic() bool { return p.Port == 0 }

// NamedVIPSpec is a PortSpec that is additionally registered under a named
// virtual IP.
type NamedVIPSpec struct {
	PortSpec
	VIPName string
	VIPPort uint32
}

// VolumeType distinguishes the three disk-source kinds a pod can request.
type VolumeType int

const (
	VolumeROOT VolumeType = iota
	VolumeMOUNT
	VolumePATH
)

func (t VolumeType) String() string {
	switch t {
	case VolumeROOT:
		return "ROOT"
	case VolumeMOUNT:
		return "MOUNT"
	case VolumePATH:
		return "PATH"
	default:
		return "UNKNOWN"
	}
}

// VolumeSpec describes a persistent volume a task (or the shared executor)
// requires.
type VolumeSpec struct {
	ResourceSpec
	Type          VolumeType
	ContainerPath string
}

// ResourceSet is the shareable bundle of resource/port/VIP/volume specs one
// or more tasks in a pod draw from.
type ResourceSet struct {
	ID        string
	Resources []ResourceSpec
	Ports     []PortSpec
	VIPs      []NamedVIPSpec
	Volumes   []VolumeSpec
}

// AnySpec holds exactly one non-volume spec of a ResourceSet: a plain
// resource, a port, or a named VIP. Base returns its embedded ResourceSpec
// so callers that only care about name/value/role can treat all three
// uniformly.
type AnySpec struct {
	Resource *ResourceSpec
	Port     *PortSpec
	VIP      *NamedVIPSpec
}

func (a AnySpec) Base() ResourceSpec {
	switch {
	case a.VIP != nil:
		return a.VIP.ResourceSpec
	case a.Port != nil:
		return a.Port.ResourceSpec
	default:
		return *a.Resource
	}
}

// Specs returns every resource/port/VIP spec in the set: resources, then
// ports, then VIPs, each in declaration order. This is not evaluation
// order; the offerevaluator package's pipeline builder (orderedSpecs)
// reorders them into static ports, then dynamic ports, then everything
// else.
func (rs ResourceSet) Specs() []AnySpec {
	var out []AnySpec
	for i := range rs.Resources {
		out = append(out, AnySpec{Resource: &rs.Resources[i]})
	}
	for i := range rs.Ports {
		out = append(out, AnySpec{Port: &rs.Ports[i]})
	}
	for i := range rs.VIPs {
		out = append(out, AnySpec{VIP: &rs.VIPs[i]})
	}
	return out
}

// PlacementRule is an external predicate over an offer and every task
// currently known in the service; its authoring (the affinity/
// anti-affinity DSL) is out of scope for this core.
type PlacementRule interface {
	// Evaluate returns (accepted, reason).
	Evaluate(offer *mesos.Offer, allTasks []*mesos.TaskInfo) (bool, string)
	String() string
}

// TaskSpec describes one task within a pod.
type TaskSpec struct {
	Name        string
	ResourceSet ResourceSet
	Command     *mesos.CommandInfo
}

// Pod describes the co-located group of tasks that make up one pod
// instance, plus its optional placement rule.
type Pod struct {
	Name          string
	Tasks         []TaskSpec
	PlacementRule PlacementRule
}

// PodInstance binds a Pod definition to a concrete instance index (the same
// Pod template is reused across every instance of a scaled-out service).
type PodInstance struct {
	Pod   Pod
	Index int
}

// Name returns the instance-qualified pod name, e.g. "node-0".
func (p PodInstance) Name() string {
	return p.Pod.Name + "-" + strconv.Itoa(p.Index)
}

// TaskNames returns every task name declared on the pod definition, in
// declaration order.
func (p PodInstance) TaskNames() []string {
	var names []string
	for _, t := range p.Pod.Tasks {
		names = append(names, t.Name)
	}
	return names
}

// TaskInstanceName returns the instance-qualified task name, e.g.
// "node-0-server", used as the key into the state store.
func TaskInstanceName(pod PodInstance, taskName string) string {
	return pod.Name() + "-" + taskName
}

// RecoveryType distinguishes why a pod is being re-evaluated.
type RecoveryType int

const (
	RecoveryNone RecoveryType = iota
	RecoveryTransient
	RecoveryPermanent
)

// PodInstanceRequirement is the top-level input to the orchestrator: which
// pod, which of its tasks to actually launch this cycle, and why.
type PodInstanceRequirement struct {
	PodInstance   PodInstance
	TasksToLaunch map[string]bool
	RecoveryType  RecoveryType
}

// ShouldLaunch reports whether the given task name is part of this cycle's
// launch set.
func (r PodInstanceRequirement) ShouldLaunch(taskName string) bool {
	return r.TasksToLaunch[taskName]
}

// TaskNames returns every task name declared in the pod, regardless of
// whether it is part of this cycle's launch set.
func (r PodInstanceRequirement) TaskNames() []string {
	return r.PodInstance.TaskNames()
}
