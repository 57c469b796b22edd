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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceNilSafeAccessors(t *testing.T) {
	var r *Resource
	assert.Equal(t, "", r.GetName())
	assert.Equal(t, Value_SCALAR, r.GetType())
	assert.Equal(t, "", r.GetRole())
	assert.False(t, r.HasRole())
	assert.False(t, r.HasReservation())
	assert.False(t, r.HasDisk())
	assert.Equal(t, 0, r.ReservationsCount())
}

func TestResourceDiskInfoSourceTypeDefaultsToPath(t *testing.T) {
	var s *Resource_DiskInfo_Source
	assert.Equal(t, Resource_DiskInfo_Source_PATH, s.GetType())
}

func TestResourceDiskInfoPersistenceAccessors(t *testing.T) {
	id := "persistence-1"
	principal := "svc-principal"
	p := &Resource_DiskInfo_Persistence{ID: &id, Principal: &principal}
	assert.Equal(t, "persistence-1", p.GetId())
	assert.Equal(t, "svc-principal", p.GetPrincipal())

	var nilP *Resource_DiskInfo_Persistence
	assert.Equal(t, "", nilP.GetId())
}

func TestVolumeModeDefaultsToReadOnly(t *testing.T) {
	var v *Volume
	assert.Equal(t, Volume_RO, v.GetMode())
	assert.Equal(t, "", v.GetContainerPath())
	assert.Nil(t, v.GetSource())
}

func TestResourceDiskInfoHasSource(t *testing.T) {
	disk := &Resource_DiskInfo{}
	assert.False(t, disk.HasSource())

	disk.Source = &Resource_DiskInfo_Source{}
	assert.True(t, disk.HasSource())
}

func TestResourceGetValueDispatchesByKind(t *testing.T) {
	scalarType := Value_SCALAR
	scalar := &Value_Scalar{Value: floatPtr(2.5)}
	r := &Resource{Type: &scalarType, Scalar: scalar}

	v := r.GetValue()
	require.NotNil(t, v.GetScalar())
	assert.Equal(t, 2.5, v.GetScalar().GetValue())
}

func TestResourceCloneDoesNotAliasReservations(t *testing.T) {
	role := "web"
	r := &Resource{
		Name: strPtrRes("cpus"),
		Role: &role,
		Reservations: []*Resource_ReservationInfo{
			{Role: &role},
		},
	}

	cloned := r.Clone()
	cloned.Reservations[0] = &Resource_ReservationInfo{}

	require.Len(t, r.Reservations, 1)
	assert.Equal(t, "web", r.Reservations[0].GetRole())
}

func TestResourceWithValueReplacesScalar(t *testing.T) {
	scalarType := Value_SCALAR
	r := &Resource{
		Name:   strPtrRes("cpus"),
		Type:   &scalarType,
		Scalar: &Value_Scalar{Value: floatPtr(1.0)},
	}

	updated := r.WithValue(&Value{Type: &scalarType, Scalar: &Value_Scalar{Value: floatPtr(4.0)}})

	assert.Equal(t, 4.0, updated.GetScalar().GetValue())
	assert.Equal(t, 1.0, r.GetScalar().GetValue())
}

func TestResourceWithRoleReplacesRoleWithoutMutatingOriginal(t *testing.T) {
	role := "*"
	r := &Resource{Name: strPtrRes("cpus"), Role: &role}

	updated := r.WithRole("web")

	assert.Equal(t, "web", updated.GetRole())
	assert.Equal(t, "*", r.GetRole())
}

func TestResourceReservationInfoAccessors(t *testing.T) {
	role := "web"
	principal := "svc-principal"
	info := &Resource_ReservationInfo{Role: &role, Principal: &principal}

	assert.Equal(t, "web", info.GetRole())
	assert.Equal(t, "svc-principal", info.GetPrincipal())
	assert.False(t, info.HasLabels())

	info.Labels = &Labels{}
	assert.True(t, info.HasLabels())
}

func strPtrRes(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
