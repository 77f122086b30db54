package migrations

import (
	"io/fs"
	"path"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectsShipSameVersions(t *testing.T) {
	pg, err := fs.Glob(FS, path.Join(PostgresDir, "*.sql"))
	require.NoError(t, err)
	lite, err := fs.Glob(FS, path.Join(SQLiteDir, "*.sql"))
	require.NoError(t, err)

	require.NotEmpty(t, pg)
	require.Len(t, lite, len(pg))
	for i := range pg {
		assert.Equal(t, path.Base(pg[i]), path.Base(lite[i]))
	}
}

// Username and password have no length rule, so no dialect may cap them.
func TestAccountCredentialsAreUnbounded(t *testing.T) {
	col := regexp.MustCompile(`(?m)^\s*(username|password)\s+(\w+)`)
	for _, dir := range []string{PostgresDir, SQLiteDir} {
		t.Run(dir, func(t *testing.T) {
			ddl, err := fs.ReadFile(FS, path.Join(dir, "00001_create_account.sql"))
			require.NoError(t, err)

			cols := col.FindAllStringSubmatch(string(ddl), -1)
			require.Len(t, cols, 2)
			for _, c := range cols {
				assert.Equal(t, "TEXT", c[2], "%s column", c[1])
			}
		})
	}
}
