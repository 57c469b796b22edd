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

// Package recommendation defines the immutable, tagged operation
// recommendations the orchestrator returns to its caller.
package recommendation

import (
	"fmt"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

// Kind tags the operation a Recommendation represents.
type Kind int

const (
	Reserve Kind = iota
	Unreserve
	Create
	Destroy
	Launch
)

func (k Kind) String() string {
	switch k {
	case Reserve:
		return "RESERVE"
	case Unreserve:
		return "UNRESERVE"
	case Create:
		return "CREATE"
	case Destroy:
		return "DESTROY"
	case Launch:
		return "LAUNCH"
	default:
		return "UNKNOWN"
	}
}

// Recommendation is a single decision the driver will turn into an
// operation against the master. It always refers to the offer currently
// being evaluated; no cross-offer recommendations are ever produced.
type Recommendation struct {
	Kind     Kind
	OfferID  *mesos.OfferID
	Resource *mesos.Resource
	TaskInfo *mesos.TaskInfo
}

// NewReserve builds a RESERVE recommendation for the given resource.
func NewReserve(offerID *mesos.OfferID, resource *mesos.Resource) Recommendation {
	return Recommendation{Kind: Reserve, OfferID: offerID, Resource: resource}
}

// NewUnreserve builds an UNRESERVE recommendation for the given resource.
func NewUnreserve(offerID *mesos.OfferID, resource *mesos.Resource) Recommendation {
	return Recommendation{Kind: Unreserve, OfferID: offerID, Resource: resource}
}

// NewCreate builds a CREATE recommendation for a persistent volume resource.
func NewCreate(offerID *mesos.OfferID, resource *mesos.Resource) Recommendation {
	return Recommendation{Kind: Create, OfferID: offerID, Resource: resource}
}

// NewDestroy builds a DESTROY recommendation for a persistent volume resource.
func NewDestroy(offerID *mesos.OfferID, resource *mesos.Resource) Recommendation {
	return Recommendation{Kind: Destroy, OfferID: offerID, Resource: resource}
}

// NewLaunch builds a LAUNCH recommendation carrying the finalized task.
func NewLaunch(offerID *mesos.OfferID, task *mesos.TaskInfo) Recommendation {
	return Recommendation{Kind: Launch, OfferID: offerID, TaskInfo: task}
}

func (r Recommendation) String() string {
	if r.Kind == Launch {
		return fmt.Sprintf("%s(offer=%s, task=%s)", r.Kind, r.OfferID.GetValue(), r.TaskInfo.GetName())
	}
	return fmt.Sprintf("%s(offer=%s, resource=%s)", r.Kind, r.OfferID.GetValue(), r.Resource.GetName())
}
