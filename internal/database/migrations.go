package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: people, tags, tasks, comments
	{
		`CREATE TABLE persons (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK (role IN ('manager', 'developer', 'designer', 'tester')),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			color TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'TODO' CHECK (status IN ('TODO', 'IN_PROGRESS', 'IN_REVIEW', 'DONE')),
			priority TEXT NOT NULL DEFAULT 'MEDIUM' CHECK (priority IN ('LOW', 'MEDIUM', 'HIGH', 'URGENT')),
			creator_id INTEGER NOT NULL,
			assignee_id INTEGER,
			parent_id INTEGER,
			due_date TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (creator_id) REFERENCES persons(id),
			FOREIGN KEY (assignee_id) REFERENCES persons(id),
			FOREIGN KEY (parent_id) REFERENCES tasks(id)
		)`,
		`CREATE INDEX idx_tasks_creator ON tasks(creator_id)`,
		`CREATE INDEX idx_tasks_assignee ON tasks(assignee_id)`,
		`CREATE INDEX idx_tasks_parent ON tasks(parent_id)`,

		`CREATE TABLE task_tags (
			task_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (task_id, tag_id),
			FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_task_tags_tag ON task_tags(tag_id)`,

		`CREATE TABLE comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			task_id INTEGER NOT NULL,
			author_id INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
			FOREIGN KEY (author_id) REFERENCES persons(id)
		)`,
		`CREATE INDEX idx_comments_task ON comments(task_id, created_at)`,
	},
}
