/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
