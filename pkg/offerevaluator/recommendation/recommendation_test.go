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

package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesosphere/dcos-commons/pkg/mesos"
)

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "RESERVE", Reserve.String())
	assert.Equal(t, "UNRESERVE", Unreserve.String())
	assert.Equal(t, "CREATE", Create.String())
	assert.Equal(t, "DESTROY", Destroy.String())
	assert.Equal(t, "LAUNCH", Launch.String())
}

func TestNewLaunchCarriesTaskInfo(t *testing.T) {
	offerID := &mesos.OfferID{Value: strPtr("offer-1")}
	name := "node-0-server"
	task := &mesos.TaskInfo{Name: &name}

	rec := NewLaunch(offerID, task)
	assert.Equal(t, Launch, rec.Kind)
	assert.Equal(t, task, rec.TaskInfo)
	assert.Contains(t, rec.String(), "node-0-server")
}

func TestNewReserveCarriesResource(t *testing.T) {
	offerID := &mesos.OfferID{Value: strPtr("offer-1")}
	name := "cpus"
	resource := &mesos.Resource{Name: &name}

	rec := NewReserve(offerID, resource)
	assert.Equal(t, Reserve, rec.Kind)
	assert.Equal(t, resource, rec.Resource)
	assert.Contains(t, rec.String(), "cpus")
}

func strPtr(s string) *string { return &s }
