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
	"github.com/mesosphere/dcos-commons/pkg/mesos"
	"github.com/mesosphere/dcos-commons/pkg/offerevaluator/mesosresource"
)

// labelPair is an ordered key/value pair. Reservation labels must be
// applied in a fixed order so that byte-for-byte determinism does not depend on Go's randomized map iteration.
type labelPair struct {
	Key, Value string
}

// withReservation returns a copy of res with one new reservation-stack
// entry appended: role/principal plus resource_id and any extra labels, in
// the order given. This is how a freshly consumed unreserved resource
// becomes a RESERVE operation's resulting resource.
func withReservation(res *mesos.Resource, role, principal, resourceID string, extra ...labelPair) *mesos.Resource {
	clone := res.Clone()
	var labels *mesos.Labels
	labels = labels.With(mesosresource.ResourceIDKey, resourceID)
	for _, p := range extra {
		labels = labels.With(p.Key, p.Value)
	}
	entry := &mesos.Resource_ReservationInfo{Role: &role, Principal: &principal, Labels: labels}
	clone.Reservations = append(append([]*mesos.Resource_ReservationInfo(nil), clone.Reservations...), entry)
	return clone
}
