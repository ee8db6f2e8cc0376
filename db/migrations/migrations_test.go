package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestInitSchemaDeclaresUniqueGuards(t *testing.T) {
	data, err := fs.ReadFile(files, "sql/000001_init_schema.up.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "CONSTRAINT uq_leave_requests_employee_date UNIQUE (employee_id, date)")
	assert.Contains(t, schema, "CONSTRAINT uq_project_assignments_employee_project UNIQUE (employee_id, project_id)")
	assert.Contains(t, schema, "CHECK (end_date IS NULL OR end_date >= start_date)")
}
