package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Entity names a table with an allow-listed update surface.
type Entity string

const (
	EntityUser Entity = "users"
	EntityPost Entity = "posts"
)

// updatableFields is the complete mutable surface per entity. Anything a
// caller supplies outside this list is dropped without comment, which is
// what keeps user_id, password_hash, is_deleted and the timestamps out of
// reach of the update path.
var updatableFields = map[Entity][]string{
	EntityUser: {"display_name", "phone", "email", "avatar_url", "bio"},
	EntityPost: {"text", "category", "event_time"},
}

// BuildUpdate filters the caller-supplied field map against the entity's
// allow-list and builds the UPDATE statement. ok is false when nothing
// survives filtering; callers treat that as a successful no-op.
func BuildUpdate(entity Entity, id string, fields map[string]any) (query string, args []any, ok bool, err error) {
	set := map[string]any{}
	for _, col := range updatableFields[entity] {
		if v, present := fields[col]; present {
			set[col] = v
		}
	}
	if len(set) == 0 {
		return "", nil, false, nil
	}
	if entity == EntityPost {
		set["updated_at"] = time.Now().UTC()
	}
	query, args, err = sb.Update(string(entity)).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, false, err
	}
	return query, args, true, nil
}
