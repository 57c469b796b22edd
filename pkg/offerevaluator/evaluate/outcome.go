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

// Package evaluate implements the per-resource-kind evaluation stages
// and the pod info builder they write into, turning offered resources
// into a launchable TaskInfo one stage per resource kind, each free to
// fail independently.
package evaluate

import (
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/recommendation"
)

// Outcome is the result of running one stage: whether it passed, why, any
// nested outcomes it delegated to, and the recommendations it produced.
// Stages never short-circuit each other; the orchestrator runs every stage
// regardless of earlier failures so the full reason set can be logged.
type Outcome struct {
	Passing         bool
	Reason          string
	Children        []Outcome
	Recommendations []recommendation.Recommendation
}

// Pass builds a successful Outcome carrying zero or more recommendations.
func Pass(reason string, recs ...recommendation.Recommendation) Outcome {
	return Outcome{Passing: true, Reason: reason, Recommendations: recs}
}

// Fail builds a failing Outcome. Failing outcomes never carry
// recommendations.
func Fail(reason string) Outcome {
	return Outcome{Passing: false, Reason: reason}
}

// WithChildren attaches nested outcomes without altering pass/fail or the
// recommendation list. None of the stages in this package attach children;
// each returns a single flat outcome.
func (o Outcome) WithChildren(children ...Outcome) Outcome {
	o.Children = append(o.Children, children...)
	return o
}

// AllRecommendations flattens this outcome's own recommendations and every
// child's, in order.
func (o Outcome) AllRecommendations() []recommendation.Recommendation {
	out := append([]recommendation.Recommendation(nil), o.Recommendations...)
	for _, c := range o.Children {
		out = append(out, c.AllRecommendations()...)
	}
	return out
}

// AllPassing reports whether this outcome and every child outcome passed.
func (o Outcome) AllPassing() bool {
	if !o.Passing {
		return false
	}
	for _, c := range o.Children {
		if !c.AllPassing() {
			return false
		}
	}
	return true
}
