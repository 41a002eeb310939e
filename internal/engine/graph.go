package engine

import "github.com/tunegraph/backend/internal/store"

// FollowerDegree returns the shortest directed hop count from one user to
// another over the follows relation: 1 when from directly follows to, 2 when
// a one-hop intermediary exists, and so on. 0 means unreachable, which is a
// normal terminal value, not an error.
//
// The search expands the graph level by level with a visited set, so it
// terminates on cycles and never revisits a user.
func FollowerDegree(users store.UserReader, fromID, toID string) int {
	from, ok := users.FindByID(fromID)
	if !ok {
		return 0
	}
	if from.Follows[toID] {
		return 1
	}

	visited := map[string]bool{fromID: true}
	frontier := make([]string, 0, len(from.Follows))
	for id := range from.Follows {
		visited[id] = true
		frontier = append(frontier, id)
	}

	for degree := 2; len(frontier) > 0; degree++ {
		var next []string
		for _, id := range frontier {
			user, ok := users.FindByID(id)
			if !ok {
				continue
			}
			if user.Follows[toID] {
				return degree
			}
			for followedID := range user.Follows {
				if visited[followedID] {
					continue
				}
				visited[followedID] = true
				next = append(next, followedID)
			}
		}
		frontier = next
	}

	return 0
}
