package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListTablesQuery_IncludesViews(t *testing.T) {
	assert.Contains(t, listTablesQuery, "table_schema = DATABASE()")
	assert.NotContains(t, listTablesQuery, "table_type", "views are listed too")
	assert.Contains(t, listTablesQuery, "ORDER BY table_name")
}
