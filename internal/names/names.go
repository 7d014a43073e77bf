// Package names generates deterministic, memorable session names. The same
// session id always maps to the same adjective-adjective-noun triplet, so
// names can be regenerated on every run instead of being stored.
package names

import (
	"fmt"
	"hash/fnv"
)

// Generate derives a memorable name from a session id. Each word slot uses
// a domain-separated rehash of the id so the slots are independent.
func Generate(sessionID string) string {
	first := hash64(sessionID)
	second := hash64(fmt.Sprintf("%d-adj2", first))
	third := hash64(fmt.Sprintf("%d-noun", first))

	return fmt.Sprintf("%s-%s-%s",
		adjectives[first%uint64(len(adjectives))],
		adjectives[second%uint64(len(adjectives))],
		nouns[third%uint64(len(nouns))],
	)
}

func hash64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s)) //nolint:errcheck
	return h.Sum64()
}

var adjectives = []string{
	"amber", "ancient", "bold", "brave", "bright", "brisk", "calm", "candid",
	"clever", "cobalt", "cosmic", "crimson", "curious", "daring", "dusty",
	"eager", "early", "emerald", "fearless", "fierce", "floral", "frosty",
	"gentle", "gilded", "golden", "grand", "hazel", "hidden", "humble",
	"icy", "ivory", "jade", "jolly", "keen", "kind", "lively", "lucid",
	"lunar", "mellow", "mighty", "misty", "noble", "nimble", "obsidian",
	"opal", "pale", "patient", "plucky", "proud", "quiet", "rapid", "restless",
	"rustic", "sable", "scarlet", "serene", "shiny", "silent", "silver",
	"sleepy", "solar", "stark", "steady", "stormy", "sunny", "swift",
	"tidal", "tranquil", "umber", "vivid", "wandering", "wild", "wise",
	"witty", "zealous",
}

var nouns = []string{
	"anchor", "aspen", "badger", "beacon", "birch", "bison", "brook",
	"canyon", "cedar", "comet", "condor", "coral", "crane", "crater",
	"current", "cypress", "delta", "dune", "eagle", "ember", "falcon",
	"fern", "fjord", "garnet", "glacier", "grove", "harbor", "hawk",
	"heron", "hollow", "ibis", "inlet", "jackal", "jasper", "kestrel",
	"lagoon", "lantern", "lark", "lynx", "maple", "marmot", "meadow",
	"mesa", "moth", "narwhal", "nebula", "osprey", "otter", "owl",
	"panther", "pebble", "pine", "plume", "prairie", "quail", "quartz",
	"raven", "reef", "ridge", "river", "saber", "salmon", "sparrow",
	"spruce", "summit", "swallow", "tern", "thicket", "tundra", "vole",
	"walnut", "willow", "wren", "zephyr",
}
