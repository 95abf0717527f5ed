package sqlstorage

import (
	"errors"
	"testing"

	"github.com/Nrich-sunny/honorcrawler/collector"
	"github.com/Nrich-sunny/honorcrawler/sqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	created   []sqldb.TableMetaData
	inserted  []sqldb.TableMetaData
	createErr error
	insertErr error
	closed    bool
}

func (f *fakeDB) CreateTable(t sqldb.TableMetaData) error {
	f.created = append(f.created, t)
	return f.createErr
}

func (f *fakeDB) Insert(t sqldb.TableMetaData) error {
	f.inserted = append(f.inserted, t)
	return f.insertErr
}

func (f *fakeDB) Close() error {
	f.closed = true
	return nil
}

func TestSqlStoreBatches(t *testing.T) {
	db := &fakeDB{}
	s, err := New(WithDB(db), WithBatchCount(2), WithRunID("1714000000000"))
	require.NoError(t, err)

	require.Len(t, db.created, 1)
	assert.Equal(t, "faculty_honor", db.created[0].TableName)
	assert.True(t, db.created[0].AutoKey)

	require.NoError(t, s.Save(
		&collector.Outcome{Site: "院系", Name: "张三", URL: "https://a/1.htm", Honors: []string{"杰青", "长江"}},
		&collector.Outcome{Site: "院系", Name: "李四", URL: "https://a/2.htm"},
	))
	assert.Empty(t, db.inserted)

	require.NoError(t, s.Save(&collector.Outcome{Site: "院系", Name: "王五", Failed: true}))
	require.Len(t, db.inserted, 1)
	assert.Equal(t, 2, db.inserted[0].DataCount)
	assert.Equal(t, []interface{}{
		"1714000000000", "院系", "张三", "https://a/1.htm", "杰青、长江", "ok",
		"1714000000000", "院系", "李四", "https://a/2.htm", "", "ok",
	}, db.inserted[0].Args)

	require.NoError(t, s.Close())
	require.Len(t, db.inserted, 2)
	assert.Equal(t, 1, db.inserted[1].DataCount)
	assert.Equal(t, "failed", db.inserted[1].Args[5])
	assert.True(t, db.closed)
}

func TestSqlStoreCreateTableError(t *testing.T) {
	db := &fakeDB{createErr: errors.New("access denied")}

	_, err := New(WithDB(db))

	assert.Error(t, err)
	assert.True(t, db.closed)
}

func TestSqlStoreInsertError(t *testing.T) {
	db := &fakeDB{insertErr: errors.New("lost connection")}
	s, err := New(WithDB(db), WithBatchCount(1))
	require.NoError(t, err)

	require.NoError(t, s.Save(&collector.Outcome{Name: "张三"}))
	assert.Error(t, s.Save(&collector.Outcome{Name: "李四"}))
	assert.Len(t, db.inserted, 1)
	assert.NoError(t, s.Close())
}
