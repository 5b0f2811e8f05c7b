// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary generator derives a YANG module of accessor RPCs from an input YANG
// module. The input set of YANG modules are read, parsed and validated using
// Goyang, and the resolved schema of the first module is handed to the rpcgen
// package which generates the corresponding accessor module.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	log "github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abravalheri/pyang-accessors/rpcgen"
	"github.com/abravalheri/pyang-accessors/util"
)

// moduleFromFileRE extracts a module name from a YANG file name, stripping an
// optional revision date.
var moduleFromFileRE = regexp.MustCompile(`^(.*?)(@\d{4}-\d{2}-\d{2})?\.yang$`)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Exitf("Error: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "generator [flags] module.yang [dependency.yang ...]",
		Short:        "generator derives CRUD-style accessor RPC modules from YANG schemas",
		Args:         cobra.MinimumNArgs(1),
		RunE:         generate,
		SilenceUsage: true,
	}

	cfgFile := cmd.PersistentFlags().String("config_file", "", "Path to config file.")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		return nil
	}

	cmd.Flags().String("path", "", "Comma separated list of paths to be recursively searched for included modules or submodules within the defined YANG modules.")
	cmd.Flags().String("output_file", "", "The file that the generated module should be written to; defaults to stdout.")
	cmd.Flags().String("name", "", "Name of the generated module, derived from the input module when empty.")
	cmd.Flags().String("namespace", "", "Namespace of the generated module, derived from the input module when empty.")
	cmd.Flags().String("prefix", "", "Prefix of the generated module, derived from the input module when empty.")
	cmd.Flags().String("suffix", "interface", "Suffix appended to the input module identity when deriving the generated one.")
	cmd.Flags().Bool("verify", false, "Re-parse the generated module and warn about constructs that do not resolve in isolation.")
	cmd.Flags().Bool("ignore_circdeps", false, "If set to true, circular dependencies between submodules are ignored.")

	return cmd
}

func generate(cmd *cobra.Command, args []string) error {
	ms := yang.NewModules()
	ms.ParseOptions = yang.Options{
		IgnoreSubmoduleCircularDependencies: viper.GetBool("ignore_circdeps"),
	}
	// Where a module uses an include or import statement, Goyang searches
	// the module set's path for the referenced module.
	if paths := viper.GetString("path"); paths != "" {
		for _, path := range strings.Split(paths, ",") {
			ms.AddPath(filepath.Join(path, "..."))
		}
	}

	for _, file := range args {
		if err := ms.Read(file); err != nil {
			return err
		}
	}
	if errs := ms.Process(); errs != nil {
		return fmt.Errorf("YANG processing failed: %v", util.Errors(errs))
	}

	name := moduleNameFromFile(args[0])
	entry, errs := ms.GetModule(name)
	if errs != nil {
		return fmt.Errorf("cannot resolve module %q: %v", name, util.Errors(errs))
	}

	gen := rpcgen.New(rpcgen.Config{
		Suffix: viper.GetString("suffix"),
		Verify: viper.GetBool("verify"),
	})
	out, diags, err := gen.Transform(entry, rpcgen.ModuleNames{
		Name:      viper.GetString("name"),
		Namespace: viper.GetString("namespace"),
		Prefix:    viper.GetString("prefix"),
	})
	if err != nil {
		return err
	}
	for _, diag := range diags {
		log.Warningf("generated module does not stand alone: %v", diag)
	}

	outfh := os.Stdout
	if fn := viper.GetString("output_file"); fn != "" {
		outfh = openFile(fn)
		defer syncFile(outfh)
	}
	return out.Dump(outfh)
}

// moduleNameFromFile derives the module name from a YANG file name, which by
// convention is the module name optionally followed by a revision date.
func moduleNameFromFile(file string) string {
	base := filepath.Base(file)
	if m := moduleFromFileRE.FindStringSubmatch(base); m != nil {
		return m[1]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// openFile opens a file with the supplied name, logging and exiting if it cannot
// be opened.
func openFile(fn string) *os.File {
	fileOut, err := os.Create(fn)
	if err != nil {
		log.Exitf("Error: could not open output file: %v\n", err)
	}
	return fileOut
}

// syncFile synchronises the supplied os.File and closes it.
func syncFile(fh *os.File) {
	if err := fh.Sync(); err != nil {
		log.Exitf("Error: could not sync file output: %v\n", err)
	}

	if err := fh.Close(); err != nil {
		log.Exitf("Error: could not close output file: %v\n", err)
	}
}
