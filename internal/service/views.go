package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/listenloud-server/internal/model"
)

func userView(media *Media, user model.User, tags []model.Tag) model.UserView {
	return model.UserView{
		ID:        user.ID,
		Username:  user.Username,
		Biography: user.Biography,
		ImageURL:  media.URL(user.ImageKey),
		Role:      user.Role,
		Tags:      tags,
	}
}

// usersByID loads the given users once each.
func usersByID(ctx context.Context, users model.UserStore, ids []uuid.UUID) (map[uuid.UUID]model.User, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	list, err := users.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	byID := make(map[uuid.UUID]model.User, len(list))
	for _, u := range list {
		byID[u.ID] = u
	}
	return byID, nil
}

// resolveTags maps tag names to known tags. Unknown names yield model.ErrTagNotFound.
func resolveTags(ctx context.Context, tags model.TagStore, names []string) ([]model.Tag, error) {
	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	found, err := tags.GetByNames(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	if len(found) != len(unique) {
		known := make(map[string]struct{}, len(found))
		for _, t := range found {
			known[t.Name] = struct{}{}
		}
		for _, n := range unique {
			if _, ok := known[n]; !ok {
				return nil, fmt.Errorf("%w: %s", model.ErrTagNotFound, n)
			}
		}
	}
	return found, nil
}
