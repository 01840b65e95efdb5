package cursorwire

import (
	"fmt"
	"math/rand"
)

var usernameAdjectives = []string{
	"amber", "brisk", "calm", "dusty", "eager", "fuzzy", "gentle",
	"hasty", "ivory", "jolly", "keen", "lucky", "mellow", "nimble",
	"olive", "plucky", "quiet", "rusty", "swift", "tidy", "vivid",
	"witty",
}

var usernameAnimals = []string{
	"badger", "crane", "dingo", "ferret", "gecko", "heron", "ibis",
	"jackal", "koala", "lemur", "marmot", "newt", "otter", "panda",
	"quail", "raven", "stoat", "tapir", "urchin", "vole", "walrus",
	"yak",
}

// RandomUsername returns an adjective-animal display name such as
// "swift-otter". Used when Config.User is empty.
func RandomUsername() string {
	adj := usernameAdjectives[rand.Intn(len(usernameAdjectives))]
	animal := usernameAnimals[rand.Intn(len(usernameAnimals))]
	return fmt.Sprintf("%s-%s", adj, animal)
}
