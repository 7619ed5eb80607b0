// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "os"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		os.Exit(ExitCodeUnknownError)
	}
}
