package optimistic

import "context"

// CreateItem inserts a placeholder tagged with a temporary id, calls create,
// then swaps the placeholder for the server-assigned entity. On failure the
// placeholder is removed and the list returns to its previous contents.
func CreateItem[T Entity[T]](ctx context.Context, store *Store[T], draft T, create RemoteFunc[T, T]) (T, error) {
	tempID := TempID()
	placeholder := draft.WithIdentity(tempID)

	m := Mutation[T, T]{
		Call: create,
		Apply: func(T) {
			store.append(placeholder)
		},
		Commit: func(result T) {
			store.replaceByID(tempID, result)
		},
		Revert: func() {
			store.removeByID(tempID)
		},
	}
	return m.Do(ctx, draft)
}

// UpdateItem applies patch to the entity with the given id, calls update, and
// settles on the server's version. On failure the captured pre-update entity
// is restored verbatim.
func UpdateItem[T Entity[T]](ctx context.Context, store *Store[T], id string, patch func(T) T, update RemoteFunc[T, T]) (T, error) {
	prev, _, ok := store.find(id)
	if !ok {
		var zero T
		return zero, ErrItemNotFound
	}
	next := patch(prev)

	m := Mutation[T, T]{
		Call: update,
		Apply: func(T) {
			store.replaceByID(id, next)
		},
		Commit: func(result T) {
			store.replaceByID(id, result)
		},
		Revert: func() {
			store.replaceByID(id, prev)
		},
	}
	return m.Do(ctx, next)
}

// DeleteItem removes the entity with the given id, then calls remove. The
// snapshot capture is built in: the removed entity and its position are
// retained and restored on failure, so callers never need their own copy.
func DeleteItem[T Entity[T]](ctx context.Context, store *Store[T], id string, remove func(ctx context.Context, id string) error) error {
	var (
		snapshot T
		index    int
	)
	if _, _, ok := store.find(id); !ok {
		return ErrItemNotFound
	}

	m := Mutation[string, struct{}]{
		Call: func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, remove(ctx, id)
		},
		Apply: func(string) {
			snapshot, index, _ = store.removeByID(id)
		},
		Revert: func() {
			store.insertAt(index, snapshot)
		},
	}
	_, err := m.Do(ctx, id)
	return err
}
