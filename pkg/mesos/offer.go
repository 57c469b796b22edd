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

package mesos

// OfferID uniquely identifies one offer from the master.
type OfferID struct {
	Value *string
}

func (o *OfferID) GetValue() string {
	if o == nil || o.Value == nil {
		return ""
	}
	return *o.Value
}

// AgentID identifies the agent that produced an offer.
type AgentID struct {
	Value *string
}

func (a *AgentID) GetValue() string {
	if a == nil || a.Value == nil {
		return ""
	}
	return *a.Value
}

// Offer is a single resource-offer message from the master.
type Offer struct {
	ID        *OfferID
	AgentID   *AgentID
	Hostname  *string
	Resources []*Resource
}

func (o *Offer) GetId() *OfferID {
	if o == nil {
		return nil
	}
	return o.ID
}

func (o *Offer) GetAgentId() *AgentID {
	if o == nil {
		return nil
	}
	return o.AgentID
}

func (o *Offer) GetHostname() string {
	if o == nil || o.Hostname == nil {
		return ""
	}
	return *o.Hostname
}

func (o *Offer) GetResources() []*Resource {
	if o == nil {
		return nil
	}
	return o.Resources
}
