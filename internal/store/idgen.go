package store

import (
	"fmt"
	"math/rand"
)

// Word lists for generated ids, adjective-noun in the style of friendly
// hostname generators. Collisions fall back to a numeric suffix.
var (
	idAdjectives = []string{
		"amber", "bold", "brisk", "calm", "clever", "deft", "eager",
		"fleet", "keen", "lucid", "mellow", "nimble", "quiet", "solid",
		"swift", "vivid",
	}
	idNouns = []string{
		"anvil", "basin", "cedar", "delta", "ember", "fjord", "gable",
		"harbor", "inlet", "juniper", "kestrel", "lantern", "marble",
		"osprey", "pylon", "quarry",
	}
)

// GenerateID produces a readable id unique within the transaction.
func (tx *Tx) GenerateID() string {
	for attempt := 0; ; attempt++ {
		id := fmt.Sprintf("%s-%s",
			idAdjectives[rand.Intn(len(idAdjectives))],
			idNouns[rand.Intn(len(idNouns))])
		if attempt >= 8 {
			id = fmt.Sprintf("%s-%d", id, rand.Intn(10000))
		}
		if _, taken := tx.tasks[id]; !taken {
			return id
		}
	}
}
