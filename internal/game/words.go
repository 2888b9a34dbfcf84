package game

import (
	"encoding/csv"
	"log"
	"math/rand"
	"os"
	"sync"
)

// =============================================================================
// WORD POOL
// =============================================================================

// defaultWords seeds the pool when neither a word file nor a database is
// configured.
var defaultWords = []string{
	"guitar", "piano", "violin", "trumpet", "drums",
	"elephant", "giraffe", "penguin", "dolphin", "octopus",
	"mountain", "volcano", "island", "desert", "glacier",
	"bicycle", "airplane", "submarine", "tractor", "helicopter",
	"sandwich", "pineapple", "spaghetti", "pancake", "watermelon",
	"umbrella", "telescope", "backpack", "lighthouse", "windmill",
	"dragon", "mermaid", "robot", "wizard", "pirate",
	"rainbow", "tornado", "snowman", "campfire", "waterfall",
}

// WordPool hands out secret words. Selection excludes a caller-supplied
// recent-history window so rooms do not see immediate repeats; the window
// is tracked per room, not here.
type WordPool struct {
	words []string

	// One pool serves every room; rooms only hold their own lock, so the
	// rng needs its own.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewWordPool(words []string, seed int64) *WordPool {
	if len(words) == 0 {
		words = defaultWords
	}
	return &WordPool{
		words: append([]string(nil), words...),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Pick returns a random word not present in recent. If the window covers
// the whole pool, repetition beats starvation and any word may come back.
func (wp *WordPool) Pick(recent []string) string {
	seen := make(map[string]bool, len(recent))
	for _, w := range recent {
		seen[w] = true
	}

	eligible := make([]string, 0, len(wp.words))
	for _, w := range wp.words {
		if !seen[w] {
			eligible = append(eligible, w)
		}
	}
	if len(eligible) == 0 {
		eligible = wp.words
	}

	wp.mu.Lock()
	idx := wp.rng.Intn(len(eligible))
	wp.mu.Unlock()
	return eligible[idx]
}

func (wp *WordPool) Size() int {
	return len(wp.words)
}

// appendRecent pushes word onto the room's recent-history window, trimming
// the oldest entries past limit.
func appendRecent(recent []string, word string, limit int) []string {
	recent = append(recent, word)
	if limit > 0 && len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}
	return recent
}

// LoadWordsCSV reads a word list from the first column of a CSV file.
func LoadWordsCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 || record[0] == "" {
			log.Println("[LoadWordsCSV] skipping empty record")
			continue
		}
		words = append(words, record[0])
	}
	return words, nil
}
