// Copyright 2026 The Mmpool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ospages

import (
	"fmt"
	"os"
)

func trace(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "# ospages: "+format+"\n", args...)
}
