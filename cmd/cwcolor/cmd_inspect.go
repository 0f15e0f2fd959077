// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teradata-labs/cyberwallet/pkg/color"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <color>",
		Short: "Show a color in every supported notation",
		Long:  `Parse an oklch(), rgb(), hsl() or hex color and print it in every notation cwcolor knows.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	v, err := color.ParseValue(args[0])
	if err != nil {
		return err
	}

	o, ok := v.(color.Oklch)
	if !ok {
		o = color.FromRGB(v.RGB())
		o.Alpha = v.Opacity()
	}
	rgb := v.RGB()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind:     %s\n", v.Kind())
	fmt.Fprintf(out, "oklch:    %s\n", o)
	if v.Opacity() < 1 {
		fmt.Fprintf(out, "rgb:      %s\n", rgb.RGBAString(v.Opacity()))
		fmt.Fprintf(out, "hsl:      %s\n", rgb.HSLAString(v.Opacity()))
	} else {
		fmt.Fprintf(out, "rgb:      %s\n", rgb)
		fmt.Fprintf(out, "hsl:      %s\n", rgb.HSLString())
	}
	fmt.Fprintf(out, "hex:      %s\n", color.Hex{Color: rgb, A: v.Opacity()})
	if ok {
		fmt.Fprintf(out, "in gamut: %t\n", o.ToOklab().ToLinear().InGamut())
	}
	return nil
}
