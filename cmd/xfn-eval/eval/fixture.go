/*
Copyright 2024 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package eval

// Fixture describes two interdependent resources for a composition
// function to evaluate: a storage bucket, and a policy document that
// references the bucket's eventual ARN.
type Fixture struct {
	Bucket BucketFixture `json:"bucket"`
	Policy PolicyFixture `json:"policy"`
}

// BucketFixture is what a composition function already knows about a
// bucket resource before an apply runs. Name is always known ahead of
// time (it is derived deterministically); ARN only becomes known once the
// provider has actually created the bucket.
type BucketFixture struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// PolicyFixture is a credential-bearing policy document attached to the
// bucket once it exists.
type PolicyFixture struct {
	Principal   string `json:"principal"`
	Credential  string `json:"credential"`
	SimulateArn string `json:"simulateArn"`
}
