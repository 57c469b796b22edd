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

package metrics

import (
	"github.com/uber-go/tally"
)

// Metrics tracks orchestrator-level counters and gauges, rooted at a
// single tally.Scope.
type Metrics struct {
	offersEvaluated        tally.Counter
	offersAccepted         tally.Counter
	offersDeclined         tally.Counter
	stagesFailed           tally.Counter
	recommendations        tally.Counter
	podsClassifiedNew      tally.Counter
	podsClassifiedExisting tally.Counter
	podsClassifiedFailed   tally.Counter
	pendingEvaluations     tally.Gauge

	scope tally.Scope
}

// New returns a Metrics struct with all metrics initialized and rooted at
// the given scope.
func New(scope tally.Scope) *Metrics {
	return &Metrics{
		offersEvaluated:        scope.Counter("offers_evaluated"),
		offersAccepted:         scope.Counter("offers_accepted"),
		offersDeclined:         scope.Counter("offers_declined"),
		stagesFailed:           scope.Counter("stages_failed"),
		recommendations:        scope.Counter("recommendations"),
		podsClassifiedNew:      scope.Tagged(map[string]string{"classification": "new"}).Counter("pods_classified"),
		podsClassifiedExisting: scope.Tagged(map[string]string{"classification": "existing"}).Counter("pods_classified"),
		podsClassifiedFailed:   scope.Tagged(map[string]string{"classification": "failed"}).Counter("pods_classified"),
		pendingEvaluations:     scope.Gauge("pending_evaluations"),

		scope: scope,
	}
}

// OfferEvaluated records that one offer was run through the pipeline.
func (m *Metrics) OfferEvaluated() { m.offersEvaluated.Inc(1) }

// OfferAccepted records that an offer's stages all passed.
func (m *Metrics) OfferAccepted() { m.offersAccepted.Inc(1) }

// OfferDeclined records that an offer failed at least one stage.
func (m *Metrics) OfferDeclined() { m.offersDeclined.Inc(1) }

// StageFailed records one failing stage outcome.
func (m *Metrics) StageFailed() { m.stagesFailed.Inc(1) }

// RecommendationsEmitted records how many recommendations one accepted
// offer produced.
func (m *Metrics) RecommendationsEmitted(n int) { m.recommendations.Inc(int64(n)) }

// PodClassifiedNew records a pod classified onto the new-pod pipeline.
func (m *Metrics) PodClassifiedNew() { m.podsClassifiedNew.Inc(1) }

// PodClassifiedExisting records a pod classified onto the existing-pod
// pipeline.
func (m *Metrics) PodClassifiedExisting() { m.podsClassifiedExisting.Inc(1) }

// PodClassifiedFailed records a pod classified as permanently failed.
func (m *Metrics) PodClassifiedFailed() { m.podsClassifiedFailed.Inc(1) }

// SetPendingEvaluations reports the current depth of the evaluation queue,
// for callers that batch pod requirements.
func (m *Metrics) SetPendingEvaluations(n int) { m.pendingEvaluations.Update(float64(n)) }
