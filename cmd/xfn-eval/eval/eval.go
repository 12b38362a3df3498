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

// Package eval implements the xfn-eval CLI's only subcommand: load a
// composition fixture and print what the Output algebra would observe
// about it during a dry run versus a real apply.
package eval

import (
	"os"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	"github.com/crossplane/xoutput/internal/phase"
	"github.com/crossplane/xoutput/pkg/output"
	"github.com/crossplane/xoutput/pkg/output/resourceid"
)

// Error strings.
const (
	errReadFixture  = "cannot read fixture file"
	errParseFixture = "cannot parse fixture YAML"
	errBuildPolicy  = "cannot build policy document"
)

// Command evaluates a composition fixture's Outputs.
type Command struct {
	Fixture string `arg:"" help:"Path to a fixture YAML file." default:"cmd/xfn-eval/fixtures/bucket.yaml"`
	Apply   bool   `help:"Evaluate as a real apply rather than a dry run (preview)."`
}

// Run loads the fixture and evaluates it.
func (c *Command) Run(log logging.Logger) error {
	phase.SetDryRun(!c.Apply)
	log = log.WithValues("dryRun", !c.Apply, "fixture", c.Fixture)

	raw, err := os.ReadFile(c.Fixture)
	if err != nil {
		return errors.Wrap(err, errReadFixture)
	}

	f := Fixture{}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return errors.Wrap(err, errParseFixture)
	}

	// A real provider SDK would hand back its own persistent identifier;
	// here a fresh one stands in for "whichever bucket resource produced
	// this value."
	bucketID := resourceid.ID(uuid.New().String())

	name := output.New(f.Bucket.Name, true, false, bucketID)

	// The bucket's ARN is only known once a real apply has actually
	// created it; during a dry run the provider has nothing to report yet.
	arn := output.New(output.UNKNOWN, false, false, bucketID)
	if c.Apply {
		arn = output.New(f.Policy.SimulateArn, true, false, bucketID)
	}

	// A Deferred lets the policy document reference the bucket's ARN
	// before the bucket resource's own Output graph has finished being
	// assembled, the same way two composed resources would reference one
	// another without either one needing to exist first.
	arnRef := output.NewDeferred()
	if err := arnRef.Resolve(arn); err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}

	credential, err := output.Secret(f.Policy.Credential)
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}

	policyDoc, err := output.JSONStringify(map[string]any{
		"principal":  f.Policy.Principal,
		"resource":   arnRef.Output(),
		"credential": credential,
	}, output.WithIndent("  "))
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}

	return logResult(log, name, arnRef.Output(), credential, policyDoc)
}

func logResult(log logging.Logger, name, arn, credential, policyDoc *output.Output) error {
	nameKnown, err := name.IsKnown()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	nameVal, err := name.Value()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	log.Info("bucket name", "known", nameKnown, "value", nameVal)

	arnKnown, err := arn.IsKnown()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	arnVal, err := arn.Value()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	log.Info("bucket arn", "known", arnKnown, "value", arnVal)

	credSecret, err := credential.IsSecret()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	log.Info("policy credential", "secret", credSecret)

	docKnown, err := policyDoc.IsKnown()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	docSecret, err := policyDoc.IsSecret()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	docVal, err := policyDoc.Value()
	if err != nil {
		return errors.Wrap(err, errBuildPolicy)
	}
	log.Info("policy document", "known", docKnown, "secret", docSecret, "value", docVal)

	return nil
}
