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

// Package recovery classifies a pod instance as new, existing, or
// permanently failed. Failure classification consults
// the state store's failure-label query; it never inspects task status
// directly, since RUNNING/FAILED bookkeeping belongs to the external
// recovery path.
package recovery

import (
	"github.com/pkg/errors"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/mesosresource"
	"github.com/mesosphere/dcos-commons/pkg/specification"
	"github.com/mesosphere/dcos-commons/pkg/statestore"
)

// Classification is the outcome of classifying one pod instance.
type Classification int

const (
	New Classification = iota
	Existing
	Failed
)

func (c Classification) String() string {
	switch c {
	case New:
		return "NEW"
	case Existing:
		return "EXISTING"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Classify determines a pod's classification. A pod is Failed if its
// requirement carries RecoveryType=PERMANENT or any of its tasks is
// labeled failed in the state store; Existing if any of its persisted
// tasks carries a resource with a non-empty resource_id label; New
// otherwise. Failed pods are
// handled by the orchestrator identically to New pods — the previous
// reservations are left alone; the external recovery path is responsible
// for reclaiming them.
func Classify(req specification.PodInstanceRequirement, persisted map[string]*mesos.TaskInfo, store statestore.StateStore) (Classification, error) {
	if req.RecoveryType == specification.RecoveryPermanent {
		return Failed, nil
	}

	for _, taskName := range req.TaskNames() {
		instanceName := specification.TaskInstanceName(req.PodInstance, taskName)
		failed, err := store.IsLabeledAsFailed(instanceName)
		if err != nil {
			return New, errors.Wrapf(err, "checking failure label for %s", instanceName)
		}
		if failed {
			return Failed, nil
		}
	}

	for _, taskName := range req.TaskNames() {
		instanceName := specification.TaskInstanceName(req.PodInstance, taskName)
		info, ok := persisted[instanceName]
		if !ok {
			continue
		}
		for _, r := range info.GetResourcesList() {
			if mesosresource.New(r).HasResourceID() {
				return Existing, nil
			}
		}
	}

	return New, nil
}
