package pathfinder

// item is a frontier entry: a cell index and its f-score at push time.
type item struct {
	index    int
	priority int
}

// frontier is a min-heap of items ordered by priority, then by cell index,
// so pops are reproducible regardless of push order.
type frontier []item

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].index < f[j].index
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(item))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}
