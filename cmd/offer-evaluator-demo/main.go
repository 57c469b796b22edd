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

package main

import (
	"context"
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/mesosphere/dcos-commons/pkg/offerevaluator"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/metrics"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/uuid"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/value"
	"github.com/mesosphere/dcos-commons/pkg/scheduler"
	"github.com/mesosphere/dcos-commons/pkg/specification"
	"github.com/mesosphere/dcos-commons/pkg/statestore"
)

var (
	version string
	app     = kingpin.New("offer-evaluator-demo", "Evaluate one pod instance requirement against a batch of Mesos offers")

	debug = app.
		Flag("debug", "enable debug-level logging").
		Short('d').
		Default("false").
		Bool()

	configPath = app.
			Flag("config", "YAML scheduler configuration").
			Short('c').
			Required().
			ExistingFile()
)

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	log.SetFormatter(&log.JSONFormatter{})
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	contents, err := ioutil.ReadFile(*configPath)
	if err != nil {
		log.WithField("error", err).Fatal("cannot read scheduler config")
	}

	var cfg scheduler.Config
	if err := scheduler.Parse(&cfg, contents); err != nil {
		log.WithField("error", err).Fatal("cannot parse scheduler config")
	}

	scope, scopeCloser := scheduler.InitMetricScope(cfg.Metrics, cfg.Framework.Name)
	defer scopeCloser.Close()
	evalMetrics := metrics.New(scope)

	store := statestore.NewMemoryStore()

	evaluator := offerevaluator.New(
		offerevaluator.Config{
			ServiceName:    cfg.Framework.Name,
			TargetConfigID: cfg.TargetConfigID,
			Principal:      cfg.Framework.Principal,
		},
		store,
		uuid.Random{},
		evalMetrics,
	)

	log.WithFields(log.Fields{
		"framework": cfg.Framework.Name,
		"role":      cfg.Framework.Role,
	}).Info("offer evaluation core initialized")

	req := demoRequirement(cfg.Framework.Role, cfg.Framework.Principal)

	recs, err := evaluator.Evaluate(context.Background(), req, nil)
	if err != nil {
		log.WithField("error", err).Fatal("evaluation failed")
	}
	log.WithField("count", len(recs)).Info("evaluated demo pod against zero offers; supply real offers via a driver to see recommendations")
}

// demoRequirement builds a single-task pod instance requirement with a
// cpu, mem, and one dynamic port, useful for exercising the wiring above
// without a live Mesos master.
func demoRequirement(role, principal string) specification.PodInstanceRequirement {
	pod := specification.Pod{
		Name: "node",
		Tasks: []specification.TaskSpec{
			{
				Name: "server",
				ResourceSet: specification.ResourceSet{
					ID: "server-resources",
					Resources: []specification.ResourceSpec{
						{Name: "cpus", Value: value.Scalar(0.1), Role: role, Principal: principal},
						{Name: "mem", Value: value.Scalar(256), Role: role, Principal: principal},
					},
					Ports: []specification.PortSpec{
						{ResourceSpec: specification.ResourceSpec{Name: "api", Role: role, Principal: principal}},
					},
				},
			},
		},
	}
	return specification.PodInstanceRequirement{
		PodInstance:   specification.PodInstance{Pod: pod, Index: 0},
		TasksToLaunch: map[string]bool{"server": true},
	}
}
