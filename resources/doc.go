// Package resources provides the human-facing strings used by the cxfw
// tools, indexed by subject and id.
//
// The strings ship embedded as YAML. A deployment can replace them by
// calling Init with its own file before anything reads Default:
//
//	if err := resources.Init("cxfw_resources.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	yes := resources.Default().Strings("response-strings", "yes")
//
// The codec packages never read this table.
package resources
