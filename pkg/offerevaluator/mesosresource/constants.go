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

// Package mesosresource wraps a raw offered mesos.Resource with the
// semantic predicates the rest of the offer-evaluation core needs: is it
// atomic, is it reserved, what role and principal it carries, and
// whether it already has a resource-id label. It understands reservation
// stacks and disk sources, since the core must reason about atomic MOUNT
// volumes and role-scoped reservations.
package mesosresource

// DefaultRole is Mesos's wildcard role; a resource offered under it carries
// no reservation.
const DefaultRole = "*"

// Label keys recognized by the core.
const (
	ResourceIDKey  = "resource_id"
	DynamicPortKey = "dynamic_port"
	VIPKeyLabel    = "vip_key"
	VIPValueLabel  = "vip_value"
)

// Resource names.
const (
	NameCPUs  = "cpus"
	NameMem   = "mem"
	NameDisk  = "disk"
	NamePorts = "ports"
)
