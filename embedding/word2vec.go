// # Word2Vec Training Overview
//
// Train learns token vectors from local co-occurrence using the CBOW
// (continuous bag of words) architecture: for each position in a document,
// the vectors of the surrounding context tokens are averaged and nudged so
// that the average predicts the center token.
//
// Prediction uses hierarchical softmax rather than negative sampling: the
// vocabulary is arranged into a Huffman tree keyed by token frequency, and
// predicting a token means taking a sequence of binary left/right decisions
// along its path from the root. Each decision is a logistic regression
// against one internal-node vector, so an update touches O(log V) nodes
// instead of all V vocabulary entries.
//
// This is a Go port of the training loop popularized by the original word2vec C
// tool and gensim's Word2Vec; workers update the shared weight matrices
// without locking (Hogwild-style), which is the same tradeoff those
// implementations make.
package embedding

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyVocabulary reports that no token met the minimum frequency
// threshold, leaving nothing to train on.
var ErrEmptyVocabulary = errors.New("no tokens meet the frequency threshold")

// Config holds the trainer hyperparameters.
type Config struct {
	Dim          int     // Vector dimensionality
	Window       int     // Context window size on each side
	Epochs       int     // Training passes over the corpus
	LearningRate float64 // Initial learning rate, decayed linearly per epoch
	MinCount     int     // Minimum token frequency for vocabulary membership
	Seed         int64   // Random seed for reproducibility
	Workers      int     // Training goroutines; 0 means NumCPU-1
}

// DefaultConfig returns the hyperparameters the rating pipeline trains with.
// Only MinCount varies by dataset; callers set it from the dataset profile.
func DefaultConfig(minCount int) Config {
	return Config{
		Dim:          128,
		Window:       10,
		Epochs:       30,
		LearningRate: 0.03,
		MinCount:     minCount,
		Seed:         42,
		Workers:      0,
	}
}

// minLearningRate is the floor the per-epoch linear decay approaches.
const minLearningRate = 0.0001

// vocabEntry is one vocabulary token with its Huffman coding.
type vocabEntry struct {
	token string
	count int
	code  []bool // Left/right decisions from the root to this leaf
	nodes []int  // Internal-node indices along that path
}

// Train fits a Space over the documents.
//
// Vocabulary construction is fully deterministic for a given corpus and
// config. Vector values are deterministic with Workers=1; with more workers
// the unlocked parallel updates make exact values run-dependent, which
// matches the underlying algorithm's usual behavior.
func Train(documents [][]string, config Config) (*Space, error) {
	if config.Dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", config.Dim)
	}

	vocabulary, tokenIndex := buildVocabulary(documents, config.MinCount)
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w (min count %d)", ErrEmptyVocabulary, config.MinCount)
	}

	buildHuffmanTree(vocabulary)

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
		if workers < 1 {
			workers = 1
		}
	}

	// Input vectors start at small seeded random values, internal-node
	// vectors at zero, following the reference implementations.
	rng := rand.New(rand.NewSource(config.Seed))
	tokenVectors := make([][]float64, len(vocabulary))
	for i := range tokenVectors {
		tokenVectors[i] = make([]float64, config.Dim)
		for d := range tokenVectors[i] {
			tokenVectors[i][d] = (rng.Float64() - 0.5) / float64(config.Dim)
		}
	}
	// A Huffman tree over V leaves has V-1 internal nodes; one extra slot
	// covers the single-token vocabulary case, which borrows index 0.
	nodeVectors := make([][]float64, len(vocabulary))
	for i := range nodeVectors {
		nodeVectors[i] = make([]float64, config.Dim)
	}

	for epoch := 0; epoch < config.Epochs; epoch++ {
		learningRate := decayedLearningRate(config.LearningRate, epoch, config.Epochs)
		trainEpoch(documents, vocabulary, tokenIndex, tokenVectors, nodeVectors,
			config, learningRate, epoch, workers)
	}

	vectors := make(map[string][]float64, len(vocabulary))
	for i, entry := range vocabulary {
		vectors[entry.token] = tokenVectors[i]
	}

	return &Space{dim: config.Dim, vectors: vectors}, nil
}

// buildVocabulary counts token frequencies and keeps tokens meeting the
// minimum count. Entries are ordered by descending frequency with ties
// broken lexicographically, so the ordering (and everything derived from
// it) is deterministic.
func buildVocabulary(documents [][]string, minCount int) ([]*vocabEntry, map[string]int) {
	counts := make(map[string]int)
	for _, document := range documents {
		for _, token := range document {
			counts[token]++
		}
	}

	vocabulary := make([]*vocabEntry, 0, len(counts))
	for token, count := range counts {
		if count >= minCount {
			vocabulary = append(vocabulary, &vocabEntry{token: token, count: count})
		}
	}

	sort.Slice(vocabulary, func(i, j int) bool {
		if vocabulary[i].count != vocabulary[j].count {
			return vocabulary[i].count > vocabulary[j].count
		}
		return vocabulary[i].token < vocabulary[j].token
	})

	tokenIndex := make(map[string]int, len(vocabulary))
	for i, entry := range vocabulary {
		tokenIndex[entry.token] = i
	}

	return vocabulary, tokenIndex
}

// huffmanNode is a node in the frequency-keyed Huffman tree under
// construction. Leaves are vocabulary entries; internal nodes carry the
// summed counts of their subtrees.
type huffmanNode struct {
	count       int
	order       int // Insertion order, used to break count ties deterministically
	vocabIndex  int // Leaf: index into the vocabulary; internal: -1
	left, right *huffmanNode
}

type huffmanHeap []*huffmanNode

func (h huffmanHeap) Len() int { return len(h) }
func (h huffmanHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].order < h[j].order
}
func (h huffmanHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *huffmanHeap) Push(x interface{}) { *h = append(*h, x.(*huffmanNode)) }
func (h *huffmanHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}

// buildHuffmanTree assigns each vocabulary entry its binary code and the
// internal-node path from the root, by repeatedly merging the two
// lowest-count subtrees.
func buildHuffmanTree(vocabulary []*vocabEntry) {
	nodes := make(huffmanHeap, len(vocabulary))
	for i, entry := range vocabulary {
		nodes[i] = &huffmanNode{count: entry.count, order: i, vocabIndex: i}
	}
	heap.Init(&nodes)

	nextOrder := len(vocabulary)
	internalCount := 0
	var root *huffmanNode
	for nodes.Len() > 1 {
		left := heap.Pop(&nodes).(*huffmanNode)
		right := heap.Pop(&nodes).(*huffmanNode)
		merged := &huffmanNode{
			count:      left.count + right.count,
			order:      nextOrder,
			vocabIndex: -1,
			left:       left,
			right:      right,
		}
		nextOrder++
		internalCount++
		heap.Push(&nodes, merged)
		root = merged
	}
	if root == nil {
		// Single-token vocabulary: the lone leaf is the root. Give it a
		// one-step path so training still has a decision to update.
		vocabulary[0].code = []bool{false}
		vocabulary[0].nodes = []int{0}
		return
	}

	// Walk the tree, recording the code (false=left, true=right) and the
	// internal-node index sequence for every leaf. Internal nodes are
	// numbered in creation order, which is deterministic.
	assignCodes(root, nil, nil, vocabulary, indexInternalNodes(root, internalCount))
}

// indexInternalNodes maps each internal node pointer to a dense index.
func indexInternalNodes(root *huffmanNode, internalCount int) map[*huffmanNode]int {
	indices := make(map[*huffmanNode]int, internalCount)
	var walk func(node *huffmanNode)
	walk = func(node *huffmanNode) {
		if node == nil || node.vocabIndex >= 0 {
			return
		}
		indices[node] = node.order
		walk(node.left)
		walk(node.right)
	}
	walk(root)

	// Orders start at len(vocabulary); rebase them to start at zero.
	base := math.MaxInt
	for _, order := range indices {
		if order < base {
			base = order
		}
	}
	for node, order := range indices {
		indices[node] = order - base
	}
	return indices
}

func assignCodes(node *huffmanNode, code []bool, path []int, vocabulary []*vocabEntry, indices map[*huffmanNode]int) {
	if node.vocabIndex >= 0 {
		entry := vocabulary[node.vocabIndex]
		entry.code = append([]bool(nil), code...)
		entry.nodes = append([]int(nil), path...)
		return
	}

	path = append(path, indices[node])
	assignCodes(node.left, append(code, false), path, vocabulary, indices)
	assignCodes(node.right, append(code, true), path, vocabulary, indices)
}

// decayedLearningRate interpolates linearly from the initial rate toward
// the floor across epochs.
func decayedLearningRate(initial float64, epoch, epochs int) float64 {
	progress := float64(epoch) / float64(epochs)
	rate := initial * (1 - progress)
	if rate < minLearningRate {
		rate = minLearningRate
	}
	return rate
}

// trainEpoch runs one pass over the documents, sharding them across
// workers. Each worker derives its own RNG from the base seed, the epoch,
// and its shard index, so a single-worker run is reproducible.
func trainEpoch(documents [][]string, vocabulary []*vocabEntry, tokenIndex map[string]int,
	tokenVectors, nodeVectors [][]float64, config Config, learningRate float64,
	epoch, workers int) {

	var wait sync.WaitGroup
	shardSize := (len(documents) + workers - 1) / workers

	for worker := 0; worker < workers; worker++ {
		start := worker * shardSize
		if start >= len(documents) {
			break
		}
		end := start + shardSize
		if end > len(documents) {
			end = len(documents)
		}

		wait.Add(1)
		go func(shard [][]string, seed int64) {
			defer wait.Done()
			rng := rand.New(rand.NewSource(seed))
			for _, document := range shard {
				trainDocument(document, vocabulary, tokenIndex, tokenVectors,
					nodeVectors, config, learningRate, rng)
			}
		}(documents[start:end], config.Seed+int64(epoch)*31+int64(worker))
	}

	wait.Wait()
}

// trainDocument applies one CBOW + hierarchical softmax update per position
// whose center token is in the vocabulary.
func trainDocument(document []string, vocabulary []*vocabEntry, tokenIndex map[string]int,
	tokenVectors, nodeVectors [][]float64, config Config, learningRate float64,
	rng *rand.Rand) {

	// Positions whose tokens survive the frequency threshold.
	positions := make([]int, 0, len(document))
	for _, token := range document {
		if index, ok := tokenIndex[token]; ok {
			positions = append(positions, index)
		}
	}

	contextMean := make([]float64, config.Dim)
	gradient := make([]float64, config.Dim)

	for center := range positions {
		// Reduced window: sample the effective window size per position,
		// weighting nearby tokens more, as the reference trainers do.
		window := 1 + rng.Intn(config.Window)

		contextCount := 0
		for i := range contextMean {
			contextMean[i] = 0
		}
		for offset := -window; offset <= window; offset++ {
			neighbor := center + offset
			if offset == 0 || neighbor < 0 || neighbor >= len(positions) {
				continue
			}
			floats.Add(contextMean, tokenVectors[positions[neighbor]])
			contextCount++
		}
		if contextCount == 0 {
			continue
		}
		floats.Scale(1/float64(contextCount), contextMean)

		// Hierarchical softmax: one logistic decision per internal node on
		// the center token's Huffman path.
		entry := vocabulary[positions[center]]
		for i := range gradient {
			gradient[i] = 0
		}
		for step, node := range entry.nodes {
			prediction := sigmoid(floats.Dot(contextMean, nodeVectors[node]))
			target := 0.0
			if !entry.code[step] {
				target = 1.0
			}
			delta := (target - prediction) * learningRate
			floats.AddScaled(gradient, delta, nodeVectors[node])
			floats.AddScaled(nodeVectors[node], delta, contextMean)
		}

		// Propagate the accumulated gradient back to every context token.
		for offset := -window; offset <= window; offset++ {
			neighbor := center + offset
			if offset == 0 || neighbor < 0 || neighbor >= len(positions) {
				continue
			}
			floats.Add(tokenVectors[positions[neighbor]], gradient)
		}
	}
}

// sigmoid is the logistic function with clamping to keep exp in range.
func sigmoid(x float64) float64 {
	switch {
	case x > 8:
		return 1
	case x < -8:
		return 0
	}
	return 1 / (1 + math.Exp(-x))
}
