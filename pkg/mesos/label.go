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

// Label is a single opaque key/value pair attached to a reservation or task.
type Label struct {
	Key   *string
	Value *string
}

func (l *Label) GetKey() string {
	if l == nil || l.Key == nil {
		return ""
	}
	return *l.Key
}

func (l *Label) GetValue() string {
	if l == nil || l.Value == nil {
		return ""
	}
	return *l.Value
}

// Labels is an ordered list of Label.
type Labels struct {
	Labels []*Label
}

func (l *Labels) GetLabels() []*Label {
	if l == nil {
		return nil
	}
	return l.Labels
}

// Get returns the value of the first label with the given key.
func (l *Labels) Get(key string) (string, bool) {
	for _, label := range l.GetLabels() {
		if label.GetKey() == key {
			return label.GetValue(), true
		}
	}
	return "", false
}

// With returns a copy of Labels with key=value appended.
func (l *Labels) With(key, value string) *Labels {
	out := &Labels{}
	if l != nil {
		out.Labels = append(out.Labels, l.Labels...)
	}
	k, v := key, value
	out.Labels = append(out.Labels, &Label{Key: &k, Value: &v})
	return out
}
