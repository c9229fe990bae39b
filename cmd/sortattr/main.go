// Command sortattr sorts a YAML or JSON document by an attribute of its
// elements.
//
//	sortattr -a name people.yaml
//	cat people.json | sortattr -a age --format json
//
// A top-level sequence is sorted as a list. A top-level mapping is sorted by
// entry value, keeping named keys and renumbering integer keys. Elements
// without the attribute are moved to the end in their original order.
//
// Every flag can also be set from the environment with the SORTATTR_ prefix,
// for example SORTATTR_CASE_SENSITIVE=true.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
