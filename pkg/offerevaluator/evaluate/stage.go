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
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/resourcepool"
)

// Stage is the single contract every evaluation unit implements: mutate
// the pool and/or the builder, and report whether it passed. Concrete
// stage types below replace what would otherwise be a deep class
// hierarchy with one flat, tagged set of implementations.
type Stage interface {
	Evaluate(pool *resourcepool.Pool, builder *PodInfoBuilder) Outcome
	Name() string
}

// Pipeline is an ordered list of stages run against one offer. Every
// stage runs regardless of earlier failures; the offer is accepted only
// if every stage passed.
type Pipeline []Stage

// Run executes every stage in order and returns their outcomes.
func (p Pipeline) Run(pool *resourcepool.Pool, builder *PodInfoBuilder) []Outcome {
	outcomes := make([]Outcome, 0, len(p))
	for _, stage := range p {
		outcomes = append(outcomes, stage.Evaluate(pool, builder))
	}
	return outcomes
}
