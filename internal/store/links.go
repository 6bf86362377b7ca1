// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"inkwell/internal/apperr"
)

// replaceLinksTx atomically replaces the full link set for a post: every
// existing link is removed and one link per distinct category ID is
// inserted. An empty set clears all links. It must run on the transaction
// of the enclosing post mutation; across independent transactions the last
// replacement wins.
//
// Category IDs are verified to exist before inserting so a link can never
// reference a nonexistent category.
func replaceLinksTx(tx *sql.Tx, postID int64, categoryIDs []int64) error {
	const op = "replace post categories"

	ids := dedupeIDs(categoryIDs)

	if len(ids) > 0 {
		query, args, err := psql.Select("COUNT(*)").
			From("categories").
			Where(sq.Eq{"id": ids}).
			ToSql()
		if err != nil {
			return apperr.FromStorage(op, err)
		}
		var count int
		if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
			return apperr.FromStorage(op, err)
		}
		if count != len(ids) {
			return apperr.Validation(op, fmt.Sprintf(
				"%d of %d category ids do not exist", len(ids)-count, len(ids)))
		}
	}

	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return apperr.FromStorage(op, err)
	}

	if len(ids) == 0 {
		return nil
	}

	insert := psql.Insert("post_categories").Columns("post_id", "category_id")
	for _, id := range ids {
		insert = insert.Values(postID, id)
	}
	// ON CONFLICT covers the race where a concurrent replacement commits
	// between our delete and insert; the composite primary key keeps the
	// link set free of duplicate pairs either way.
	query, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return apperr.FromStorage(op, err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return apperr.FromStorage(op, err)
	}
	return nil
}

// dedupeIDs returns the distinct IDs in first-seen order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
