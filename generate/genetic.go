package generate

import (
	"sort"

	"go-pattern/pattern"
	"go-pattern/rng"
)

// Individual is a candidate bit pattern and its similarity to the target
type Individual struct {
	Genes   []uint8
	Fitness float64
}

// Pattern returns the genes as a step pattern
func (ind Individual) Pattern() pattern.Pattern {
	p := pattern.New(len(ind.Genes))
	for i, g := range ind.Genes {
		p[i] = float64(g)
	}
	return p
}

func (ind Individual) clone() Individual {
	genes := make([]uint8, len(ind.Genes))
	copy(genes, ind.Genes)
	return Individual{Genes: genes, Fitness: ind.Fitness}
}

// GeneticResult is the fittest individual plus the best fitness seen at the
// start and after each generation (len = generations+1)
type GeneticResult struct {
	Best    Individual
	History []float64
}

// Fitness is the fraction of genes matching target (Hamming similarity). Any
// target step > 0 counts as a 1. An empty target scores 1.
func Fitness(genes []uint8, target pattern.Pattern) float64 {
	if len(target) == 0 {
		return 1
	}
	match := 0
	for i := range target {
		want := uint8(0)
		if target[i] > 0 {
			want = 1
		}
		if i < len(genes) && genes[i] == want {
			match++
		}
	}
	return float64(match) / float64(len(target))
}

// Genetic evolves a population of random bit patterns toward target.
// populationSize is raised to at least 2 and rounded up to even. The top half
// of each generation survives unchanged, so best fitness never drops. With 0
// generations the best of the initial population is returned.
func Genetic(src *rng.Source, target pattern.Pattern, populationSize, generations int, mutationRate float64) GeneticResult {
	if populationSize < 2 {
		populationSize = 2
	}
	if populationSize%2 != 0 {
		populationSize++
	}
	if generations < 0 {
		generations = 0
	}
	if mutationRate < 0 {
		mutationRate = 0
	}
	if mutationRate > 1 {
		mutationRate = 1
	}
	length := len(target)

	pop := make([]Individual, populationSize)
	for i := range pop {
		genes := make([]uint8, length)
		for g := range genes {
			if src.Next() < 0.5 {
				genes[g] = 1
			}
		}
		pop[i] = Individual{Genes: genes}
	}

	rank := func() {
		for i := range pop {
			pop[i].Fitness = Fitness(pop[i].Genes, target)
		}
		sort.SliceStable(pop, func(i, j int) bool {
			return pop[i].Fitness > pop[j].Fitness
		})
	}

	rank()
	history := make([]float64, 0, generations+1)
	history = append(history, pop[0].Fitness)

	survivors := populationSize / 2
	for gen := 0; gen < generations; gen++ {
		next := make([]Individual, 0, populationSize)
		for i := 0; i < survivors; i++ {
			next = append(next, pop[i].clone())
		}
		for len(next) < populationSize {
			a := pop[src.Intn(survivors)]
			b := pop[src.Intn(survivors)]
			child := crossover(src, a, b)
			mutate(src, child, mutationRate)
			next = append(next, child)
		}
		pop = next
		rank()
		history = append(history, pop[0].Fitness)
	}

	return GeneticResult{Best: pop[0].clone(), History: history}
}

// crossover takes genes [0, split) from a and [split, n) from b
func crossover(src *rng.Source, a, b Individual) Individual {
	n := len(a.Genes)
	split := src.Intn(n)
	genes := make([]uint8, n)
	copy(genes[:split], a.Genes[:split])
	copy(genes[split:], b.Genes[split:])
	return Individual{Genes: genes}
}

func mutate(src *rng.Source, ind Individual, rate float64) {
	for i := range ind.Genes {
		if src.Next() < rate {
			ind.Genes[i] ^= 1
		}
	}
}
