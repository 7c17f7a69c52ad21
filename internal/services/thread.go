package services

import (
	"sort"

	"pdfhub/internal/models"
)

// threadNode is one arena slot during thread assembly. Children are stored
// as indexes into the arena rather than pointers so the whole forest lives
// in two flat allocations.
type threadNode struct {
	comment  *models.Comment
	children []int
}

// AssembleThread builds the nested reply forest from a flat comment slice.
//
// The input may arrive in any order; assembly is deterministic because the
// comments are sorted by creation time (then ID) before linking. A comment
// whose parent is missing from the slice is attached as a root instead of
// being dropped, so every input comment appears in the output exactly once.
func AssembleThread(comments []*models.Comment) []*models.CommentNode {
	if len(comments) == 0 {
		return []*models.CommentNode{}
	}

	sorted := make([]*models.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	// First pass: place every comment in the arena and index it by ID.
	arena := make([]threadNode, len(sorted))
	index := make(map[int64]int, len(sorted))
	for i, c := range sorted {
		arena[i] = threadNode{comment: c}
		index[c.ID] = i
	}

	// Second pass: link children to parents. Orphans become roots.
	var roots []int
	for i, c := range sorted {
		if c.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		parent, ok := index[*c.ParentID]
		if !ok {
			roots = append(roots, i)
			continue
		}
		arena[parent].children = append(arena[parent].children, i)
	}

	forest := make([]*models.CommentNode, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, buildNode(arena, root))
	}
	return forest
}

func buildNode(arena []threadNode, i int) *models.CommentNode {
	c := arena[i].comment
	node := &models.CommentNode{
		ID:        c.ID,
		Content:   c.Content,
		Author:    c.DisplayAuthor(),
		IsGuest:   c.IsGuest(),
		CreatedAt: c.CreatedAt.UTC(),
		Replies:   make([]*models.CommentNode, 0, len(arena[i].children)),
	}
	for _, child := range arena[i].children {
		node.Replies = append(node.Replies, buildNode(arena, child))
	}
	return node
}
