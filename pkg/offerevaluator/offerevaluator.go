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

// Package offerevaluator implements the orchestrator: it
// classifies a pod instance, builds the appropriate stage pipeline, runs
// it against each offer in turn, and returns the recommendations of the
// first offer that passes every stage. It is the single top-level entry point for matching one
// pod's resource requirement against a batch of offers.
package offerevaluator

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/evaluate"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/metrics"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/recommendation"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/recovery"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/specification"
	"github.com/mesosphere/dcos-commons/pkg/statestore"
)

// Config carries the framework-wide settings the orchestrator needs to
// mint reservations.
type Config struct {
	ServiceName    string
	TargetConfigID string
	Principal      string
}

// OfferEvaluator is the top-level entry point: one instance is constructed
// per scheduler process and reused across every pod-evaluation call.
type OfferEvaluator struct {
	config  Config
	store   statestore.StateStore
	uuidGen uuid.Generator
	metrics *metrics.Metrics

	lastPersisted []*mesos.TaskInfo
}

// New constructs an OfferEvaluator. store is the dependency-injected state
// store capability; uuidGen is the dependency-injected UUID
// source, normally uuid.Random{} in production and a uuid.Sequence in
// tests.
func New(config Config, store statestore.StateStore, uuidGen uuid.Generator, m *metrics.Metrics) *OfferEvaluator {
	return &OfferEvaluator{config: config, store: store, uuidGen: uuidGen, metrics: m}
}

// allPersistedTasks returns the full persisted-task snapshot read at the
// start of the current Evaluate call, for PlacementRuleStage's
// allTasksInService argument.
func (e *OfferEvaluator) allPersistedTasks() []*mesos.TaskInfo {
	return e.lastPersisted
}

// Evaluate runs one pod instance requirement against a batch of offers, in
// the order given, and returns the recommendations of the first offer that
// satisfies every stage. It returns a nil slice (not an error) when no
// offer satisfies the pod — the caller declines every offer this cycle.
func (e *OfferEvaluator) Evaluate(ctx context.Context, req specification.PodInstanceRequirement, offers []*mesos.Offer) ([]recommendation.Recommendation, error) {
	if err := validateRequirement(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	persistedList, err := e.store.FetchTasks()
	if err != nil {
		return nil, errors.Wrap(err, "fetching persisted tasks")
	}
	e.lastPersisted = persistedList

	persisted := make(map[string]*mesos.TaskInfo, len(persistedList))
	for _, t := range persistedList {
		persisted[t.GetName()] = t
	}

	classification, err := recovery.Classify(req, persisted, e.store)
	if err != nil {
		return nil, errors.Wrap(err, "classifying pod")
	}

	switch classification {
	case recovery.New:
		e.metrics.PodClassifiedNew()
	case recovery.Existing:
		e.metrics.PodClassifiedExisting()
	case recovery.Failed:
		e.metrics.PodClassifiedFailed()
	}

	if classification == recovery.Existing {
		if missing := missingPersistedTask(req, persisted); missing != "" {
			log.WithFields(log.Fields{"pod": req.PodInstance.Name(), "task": missing}).
				Warn("persisted task record missing for existing pod; treating cycle as unsatisfied")
			return nil, nil
		}
	}

	var pipeline evaluate.Pipeline
	if classification == recovery.Existing {
		pipeline = e.buildExistingPipeline(req, persisted)
	} else {
		pipeline = e.buildNewPipeline(req)
	}

	existingExecutorID := findExecutorID(classification, req, persisted)
	podName := req.PodInstance.Name()

	for i, offer := range offers {
		pool := resourcepool.New(offer)
		builder := evaluate.NewPodInfoBuilder(req.PodInstance, e.config.ServiceName, e.config.TargetConfigID, existingExecutorID)

		outcomes := pipeline.Run(pool, builder)
		e.metrics.OfferEvaluated()

		allPass := true
		for j, o := range outcomes {
			log.WithFields(log.Fields{
				"pod":     podName,
				"offer":   offer.GetId().GetValue(),
				"index":   i,
				"stage":   pipeline[j].Name(),
				"passing": o.AllPassing(),
				"reason":  o.Reason,
			}).Debug("stage outcome")
			if !o.AllPassing() {
				allPass = false
				e.metrics.StageFailed()
			}
		}

		if !allPass {
			e.metrics.OfferDeclined()
			continue
		}

		e.metrics.OfferAccepted()
		var recs []recommendation.Recommendation
		for _, o := range outcomes {
			recs = append(recs, o.AllRecommendations()...)
		}
		e.metrics.RecommendationsEmitted(len(recs))
		return recs, nil
	}

	log.WithField("pod", podName).Info("no offer satisfied pod instance requirement this cycle")
	return nil, nil
}

func missingPersistedTask(req specification.PodInstanceRequirement, persisted map[string]*mesos.TaskInfo) string {
	for _, name := range req.TaskNames() {
		instanceName := specification.TaskInstanceName(req.PodInstance, name)
		if _, ok := persisted[instanceName]; !ok {
			return instanceName
		}
	}
	return ""
}

// findExecutorID looks up the executor id an existing pod's tasks already
// share, if any, so LaunchEvaluationStage rebinds to it instead of leaving
// a fresh one to be assigned by the master.
func findExecutorID(classification recovery.Classification, req specification.PodInstanceRequirement, persisted map[string]*mesos.TaskInfo) *mesos.ExecutorID {
	if classification != recovery.Existing {
		return nil
	}
	for _, name := range req.TaskNames() {
		instanceName := specification.TaskInstanceName(req.PodInstance, name)
		info, ok := persisted[instanceName]
		if !ok {
			continue
		}
		if id := info.GetExecutor().GetExecutorId(); id.GetValue() != "" {
			return id
		}
	}
	return nil
}
