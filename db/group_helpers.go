package db

import (
	"database/sql"
	"fmt"
)

// GetGroupBySlug returns nil, nil when no such group exists.
func GetGroupBySlug(slug string) (*Group, error) {
	var group Group
	err := Conn.Get(&group, "SELECT * FROM groups WHERE slug = $1", slug)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting group: %v", err)
	}

	return &group, nil
}

func CreateGroup(title, slug, description string) (*Group, error) {
	group := &Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}

	err := Conn.QueryRow(
		"INSERT INTO groups (title, slug, description) VALUES ($1, $2, $3) RETURNING id",
		title, slug, description,
	).Scan(&group.Id)

	if err != nil {
		if IsNonUniqueErr(err) {
			return nil, fmt.Errorf("a group with slug %s already exists", slug)
		}

		return nil, fmt.Errorf("error creating group: %v", err)
	}

	return group, nil
}

// DeleteGroup removes the group. Posts referencing it keep existing with
// their group cleared via ON DELETE SET NULL.
func DeleteGroup(groupId int64) error {
	_, err := Conn.Exec("DELETE FROM groups WHERE id = $1", groupId)

	if err != nil {
		return fmt.Errorf("error deleting group: %v", err)
	}

	return nil
}
