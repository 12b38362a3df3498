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

// Package main is a small CLI that drives the Output algebra against a
// composition fixture, useful for exercising a dry-run against a real
// apply without a whole runtime around it.
package main

import (
	"github.com/alecthomas/kong"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/crossplane/crossplane-runtime/pkg/logging"

	"github.com/crossplane/xoutput/cmd/xfn-eval/eval"
)

type debugFlag bool

var cli struct {
	Debug debugFlag `short:"d" help:"Print verbose logging statements."`

	Eval eval.Command `cmd:"" help:"Evaluate a composition fixture's Outputs." default:"1"`
}

// BeforeApply binds the dev mode logger to the kong context when debugFlag
// is passed.
func (d debugFlag) BeforeApply(ctx *kong.Context) error { //nolint:unparam // BeforeApply requires this signature.
	zl := zap.New(zap.UseDevMode(true)).WithName("xfn-eval")
	ctx.BindTo(logging.NewLogrLogger(zl), (*logging.Logger)(nil))
	return nil
}

func main() {
	zl := zap.New().WithName("xfn-eval")

	ctx := kong.Parse(&cli,
		kong.Name("xfn-eval"),
		kong.Description("Evaluates composition Outputs against a fixture."),
		kong.BindTo(logging.NewLogrLogger(zl), (*logging.Logger)(nil)),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
