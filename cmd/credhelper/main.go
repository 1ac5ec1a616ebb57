/*
Copyright 2025 Gosayram

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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Gosayram/gcrauth/cmd/credhelper/cmd"
	"github.com/Gosayram/gcrauth/internal/version"
)

func main() {
	// Handle --version flag before cobra initialization
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gcrauth credential helper\n%s\n", version.Info())
		os.Exit(0)
	}

	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
