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

package scheduler

import (
	"io"
	"time"

	"github.com/cactus/go-statsd-client/statsd"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	tallystatsd "github.com/uber-go/tally/statsd"
)

// InitMetricScope builds the root tally scope this process reports
// through, prefixed by cfg.Prefix, else rootScope, else "offer_evaluator".
// It always reports through a no-op statsd client: MetricsConfig names no
// endpoint, so the scope functions (every Counter/Gauge/Timer call
// succeeds) but reports nowhere.
func InitMetricScope(cfg MetricsConfig, rootScope string) (tally.Scope, io.Closer) {
	var reporter tally.StatsReporter
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = rootScope
	}
	if prefix == "" {
		prefix = "offer_evaluator"
	}

	c, err := statsd.NewNoopClient()
	if err != nil {
		log.WithField("error", err).Fatal("unable to construct statsd noop client")
	}
	reporter = tallystatsd.NewReporter(c, tallystatsd.Options{})

	flushInterval := cfg.FlushInterval
	if flushInterval == 0 {
		flushInterval = time.Second
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   prefix,
		Tags:     map[string]string{},
		Reporter: reporter,
	}, flushInterval)
	return scope, closer
}
