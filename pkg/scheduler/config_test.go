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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleDocument(t *testing.T) {
	var cfg Config
	err := Parse(&cfg, []byte(`
framework:
  name: node
  principal: svc-principal
  role: web
mesos:
  zk_path: zk://master.mesos:2181/mesos
flags:
  api_port: 8080
`))
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Framework.Name)
	assert.Equal(t, "web", cfg.Framework.Role)
	assert.Equal(t, "zk://master.mesos:2181/mesos", cfg.Mesos.ZkPath)
	assert.Equal(t, 8080, cfg.Flags.APIPort)
}

func TestParseLaterDocumentOverridesEarlier(t *testing.T) {
	var cfg Config
	err := Parse(&cfg,
		[]byte("framework:\n  name: node\n  role: web\n"),
		[]byte("framework:\n  role: overridden\n"),
	)
	require.NoError(t, err)
	assert.Equal(t, "node", cfg.Framework.Name)
	assert.Equal(t, "overridden", cfg.Framework.Role)
}

func TestParseInvalidYAMLReturnsError(t *testing.T) {
	var cfg Config
	err := Parse(&cfg, []byte("not: [valid: yaml"))
	assert.Error(t, err)
}
