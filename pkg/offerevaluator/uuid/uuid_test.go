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

package uuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGeneratesDistinctValues(t *testing.T) {
	g := Random{}
	a, b := g.New(), g.New()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}

func TestSequenceIncrementsWithPrefix(t *testing.T) {
	s := &Sequence{Prefix: "res"}
	assert.Equal(t, "res-1", s.New())
	assert.Equal(t, "res-2", s.New())
}

func TestSequenceDefaultsPrefix(t *testing.T) {
	s := &Sequence{}
	assert.Equal(t, "uuid-1", s.New())
}
