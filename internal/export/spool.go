/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os/exec"
	"runtime"
)

// spool hands a finished PDF to the system print spooler. The sheet itself
// is not re-rendered for print; the spooler receives exactly the exported
// document.
func spool(path, title string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		// Delegates to the shell print verb of the registered PDF handler.
		cmd = exec.Command("cmd", "/C", "start", "/min", "", path, "/print")
	case "darwin", "linux":
		cmd = exec.Command("lp", "-t", title, path)
	default:
		return fmt.Errorf("printing is not supported on %s", runtime.GOOS)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("print spooler: %v: %s", err, out)
	}
	return nil
}
