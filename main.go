// SPDX-License-Identifier: MPL-2.0

// addonscan lists and checks Elder Scrolls Online add-ons.
package main

import "github.com/addonscan/addonscan/cmd/addonscan"

func main() {
	cmd.Execute()
}
