// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionInfo is the subset of build metadata the version command prints
type versionInfo struct {
	version   string
	revision  string
	time      string
	modified  bool
	goVersion string
	platform  string
}

// readVersionInfo collects version details from the embedded build info
func readVersionInfo() versionInfo {
	info := versionInfo{
		version:   "dev",
		goVersion: runtime.Version(),
		platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.version = buildInfo.Main.Version
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.revision = setting.Value
		case "vcs.time":
			info.time = setting.Value
		case "vcs.modified":
			info.modified = setting.Value == "true"
		}
	}

	return info
}

// formatVersion returns a formatted string of version information
func formatVersion() string {
	info := readVersionInfo()
	modified := ""
	if info.modified {
		modified = " (modified)"
	}
	return fmt.Sprintf(`🚀 textfix version info:
Version:   %s
Revision:  %s%s
Built:     %s
Go:        %s
Platform:  %s
`, info.version, info.revision, modified, info.time, info.goVersion, info.platform)
}

// NewVersionCmd creates a new version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), formatVersion())
		},
	}
}
