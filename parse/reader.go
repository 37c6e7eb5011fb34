// Copyright (c) 2024, The mash Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"os"

	"mash.dev/mash/base/fsx"
)

// FileReader returns a Reader that searches searchDirs for name and
// reads the first hit, the same search semantics imprt uses.
func FileReader(searchDirs []string) Reader {
	return func(name string) (string, bool, error) {
		hits := fsx.FindFilesOnPaths(searchDirs, name)
		if len(hits) == 0 {
			return "", false, nil
		}
		b, err := os.ReadFile(hits[0])
		if err != nil {
			return "", false, err
		}
		return string(b), true, nil
	}
}
