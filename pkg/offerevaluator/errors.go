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

package offerevaluator

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mesosphere/dcos-commons/pkg/specification"
)

// ErrInvalidRequirement tags a pod instance requirement that is internally
// inconsistent. It is fatal to the Evaluate call — the caller
// must fix the requirement before retrying, unlike an OfferInsufficient
// condition which simply produces an empty result.
var ErrInvalidRequirement = errors.New("invalid pod instance requirement")

func validateRequirement(req specification.PodInstanceRequirement) error {
	var result *multierror.Error

	if len(req.PodInstance.Pod.Tasks) == 0 {
		result = multierror.Append(result, errors.New("pod has no tasks"))
	}

	seen := map[string]bool{}
	for _, t := range req.PodInstance.Pod.Tasks {
		if seen[t.Name] {
			result = multierror.Append(result, errors.Errorf("duplicate task name %q", t.Name))
		}
		seen[t.Name] = true

		rs := t.ResourceSet
		if len(rs.Resources) == 0 && len(rs.Ports) == 0 && len(rs.VIPs) == 0 && len(rs.Volumes) == 0 {
			result = multierror.Append(result, errors.Errorf("task %q has an empty resource set", t.Name))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Wrap(err, ErrInvalidRequirement.Error())
	}
	return nil
}
