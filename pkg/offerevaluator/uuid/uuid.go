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

// Package uuid provides the injectable UUID source used to tag fresh
// reservations and persistent volumes. The default generator wraps
// github.com/pborman/uuid.
package uuid

import (
	"strconv"

	"github.com/pborman/uuid"
)

// Generator produces opaque identifier strings. Stages never call
// uuid.NewUUID() directly; they take a Generator so tests can swap in a
// deterministic source and assert on exact recommendation output.
type Generator interface {
	New() string
}

// Random is the production Generator, backed by pborman/uuid.
type Random struct{}

// New returns a freshly generated random UUID string.
func (Random) New() string { return uuid.NewUUID().String() }

// Sequence is a deterministic Generator for tests: it hands out
// "prefix-N" for increasing N, so recommendation output can be compared
// byte-for-byte across runs.
type Sequence struct {
	Prefix string
	next   int
}

// New returns the next identifier in the sequence.
func (s *Sequence) New() string {
	s.next++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "uuid"
	}
	return prefix + "-" + strconv.Itoa(s.next)
}
