package palette

import "sort"

const octreeDepth = 5

type octreeNode struct {
	children [8]*octreeNode
	leaf     bool
	count    int
	rSum     int
	gSum     int
	bSum     int
	order    int
}

type octree struct {
	root      *octreeNode
	levels    [octreeDepth][]*octreeNode
	leafCount int
	created   int
}

func octreeCluster(samples []RGB, maxColors int) []ExtractedColor {
	tree := &octree{}
	tree.root = tree.newNode(0)
	for _, sample := range samples {
		tree.insert(sample)
	}

	tree.reduce(maxColors)

	leaves := tree.leaves()
	colors := make([]ExtractedColor, 0, len(leaves))
	for _, leaf := range leaves {
		mean := RGB{
			R: uint8(leaf.rSum / leaf.count),
			G: uint8(leaf.gSum / leaf.count),
			B: uint8(leaf.bSum / leaf.count),
		}
		colors = append(colors, NewExtractedColor(mean, float64(leaf.count)/float64(len(samples))))
	}

	sortByWeight(colors)
	return colors
}

func (t *octree) newNode(level int) *octreeNode {
	node := &octreeNode{leaf: level == octreeDepth, order: t.created}
	t.created++
	if node.leaf {
		t.leafCount++
	} else {
		t.levels[level] = append(t.levels[level], node)
	}
	return node
}

func (t *octree) insert(c RGB) {
	node := t.root
	for level := 0; !node.leaf; level++ {
		shift := 7 - level
		index := int((c.R>>shift)&1)<<2 | int((c.G>>shift)&1)<<1 | int((c.B>>shift)&1)
		if node.children[index] == nil {
			node.children[index] = t.newNode(level + 1)
		}
		node = node.children[index]
	}

	node.count++
	node.rSum += int(c.R)
	node.gSum += int(c.G)
	node.bSum += int(c.B)
}

// reduce folds the deepest internal nodes into leaves until at most maxColors
// leaves remain. Nodes with the smallest population fold first.
func (t *octree) reduce(maxColors int) {
	for level := octreeDepth - 1; level >= 0 && t.leafCount > maxColors; level-- {
		nodes := t.levels[level]
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].subtreeCount() < nodes[j].subtreeCount()
		})

		for _, node := range nodes {
			if t.leafCount <= maxColors {
				return
			}
			t.fold(node)
		}
	}
}

func (t *octree) fold(node *octreeNode) {
	if node.leaf {
		return
	}

	children := 0
	for index, child := range node.children {
		if child == nil {
			continue
		}
		node.count += child.count
		node.rSum += child.rSum
		node.gSum += child.gSum
		node.bSum += child.bSum
		node.children[index] = nil
		children++
	}

	node.leaf = true
	t.leafCount -= children - 1
}

func (n *octreeNode) subtreeCount() int {
	if n.leaf {
		return n.count
	}
	total := 0
	for _, child := range n.children {
		if child != nil {
			total += child.subtreeCount()
		}
	}
	return total
}

func (t *octree) leaves() []*octreeNode {
	var leaves []*octreeNode
	var walk func(node *octreeNode)
	walk = func(node *octreeNode) {
		if node.leaf {
			if node.count > 0 {
				leaves = append(leaves, node)
			}
			return
		}
		for _, child := range node.children {
			if child != nil {
				walk(child)
			}
		}
	}
	walk(t.root)

	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].order < leaves[j].order
	})
	return leaves
}
