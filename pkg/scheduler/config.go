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

// Package scheduler holds the process-wide configuration for a scheduler
// that embeds the offer evaluation core: framework identity, the Mesos
// master, the metrics sink, and scheduler flags. It is loaded from YAML the same way every process
// config in this codebase is loaded, and it is intentionally a flat
// aggregate of sub-configs rather than a single struct with every field
// inlined.
package scheduler

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// MetricsConfig configures the tally reporting sink.
type MetricsConfig struct {
	Prefix        string        `yaml:"prefix"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// FrameworkConfig identifies this scheduler to Mesos and names the default
// principal reservations and persistent volumes are minted under when a
// spec names none of its own.
type FrameworkConfig struct {
	Name       string `yaml:"name"`
	Principal  string `yaml:"principal"`
	Role       string `yaml:"role"`
	User       string `yaml:"user"`
	FailoverMS int64  `yaml:"failover_timeout_ms"`
}

// MesosConfig points at the master the scheduler driver registers
// against.
type MesosConfig struct {
	ZkPath      string `yaml:"zk_path"`
	ExecutorURI string `yaml:"executor_uri"`
}

// SchedulerFlags carries the process-level knobs that are useful to
// override from the command line without editing the YAML file.
type SchedulerFlags struct {
	APIPort       int    `yaml:"api_port"`
	LibmesosURI   string `yaml:"libmesos_uri"`
	SleepDuration string `yaml:"sleep_duration"`
}

// Config is the top-level process configuration, one YAML document.
type Config struct {
	Framework      FrameworkConfig `yaml:"framework"`
	Mesos          MesosConfig     `yaml:"mesos"`
	Metrics        MetricsConfig   `yaml:"metrics"`
	Flags          SchedulerFlags  `yaml:"flags"`
	TargetConfigID string          `yaml:"target_config_id"`
}

// Parse decodes and merges one or more YAML documents into cfg, later
// documents overriding fields set by earlier ones, so several YAML
// documents can be layered into a single effective config.
func Parse(cfg *Config, contents ...[]byte) error {
	for _, c := range contents {
		if err := yaml.Unmarshal(c, cfg); err != nil {
			return errors.Wrap(err, "parsing scheduler config")
		}
	}
	return nil
}
